package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"out-of-office/internal/events"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// AggregateLeaveRequest tags outbox rows written by the leave workflow.
const AggregateLeaveRequest = "leave_request"

// MaxOutboxRetries bounds redelivery; a row that failed this often stays
// failed for manual inspection instead of being polled again.
const MaxOutboxRetries = 10

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent encodes payload as JSON into a pending event.
func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       data,
		Status:        OutboxStatusPending,
	}, nil
}

// NewLeaveLifecycleEvent wraps a leave status change for the lifecycle topic,
// keyed by the leave request so consumers see its changes in order.
func NewLeaveLifecycleEvent(e events.LeaveLifecycleEvent) (OutboxEvent, error) {
	switch e.EventType {
	case events.LeaveSubmitted, events.LeaveCanceled, events.LeaveApproved, events.LeaveRejected:
	default:
		return OutboxEvent{}, fmt.Errorf("unknown leave lifecycle event: %q", e.EventType)
	}
	if e.LeaveRequestID == "" {
		return OutboxEvent{}, errors.New("leave lifecycle event needs a leave request id")
	}
	return NewOutboxEvent(e.RequestID, AggregateLeaveRequest, e.LeaveRequestID, e.EventType, events.LeaveLifecycleTopic, e)
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	ListByAggregate(ctx context.Context, aggregateType, aggregateID string) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

const insertOutboxSQL = `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutboxSQL,
		event.ID, event.RequestID, event.AggregateType,
		event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

const selectOutboxColumns = `
SELECT
	id::text,
	COALESCE(request_id, ''),
	aggregate_type,
	aggregate_id::text,
	event_type,
	topic,
	payload,
	status,
	retry_count,
	COALESCE(next_retry_at, created_at)
FROM outbox_events
`

// ListPending returns deliverable rows oldest first: never sent, or failed
// with retries left and the backoff elapsed.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	query := selectOutboxColumns + `
WHERE (status = $1 OR (status = $2 AND retry_count < $3))
	AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at ASC
LIMIT $4
`
	rows, err := r.conn().QueryContext(ctx, query, OutboxStatusPending, OutboxStatusFailed, MaxOutboxRetries, limit)
	if err != nil {
		return nil, err
	}
	return scanOutboxRows(rows, limit)
}

// ListByAggregate returns every row written for one aggregate, in write order.
func (r *outboxRepository) ListByAggregate(ctx context.Context, aggregateType, aggregateID string) ([]OutboxEvent, error) {
	query := selectOutboxColumns + `
WHERE aggregate_type = $1 AND aggregate_id = $2
ORDER BY created_at ASC
`
	rows, err := r.conn().QueryContext(ctx, query, aggregateType, aggregateID)
	if err != nil {
		return nil, err
	}
	return scanOutboxRows(rows, 0)
}

func scanOutboxRows(rows *sql.Rows, capacity int) ([]OutboxEvent, error) {
	defer rows.Close()

	out := make([]OutboxEvent, 0, capacity)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1
`, id, OutboxStatusSent)
	return err
}

// MarkFailed records the error and schedules the next attempt with a linear
// backoff of 15 seconds per retry.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET
	status = $2,
	retry_count = retry_count + 1,
	error_message = LEFT($3, 500),
	next_retry_at = NOW() + ((retry_count + 1) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1
`, id, OutboxStatusFailed, reason)
	return err
}

type sqlConn interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}

func (r *outboxRepository) conn() sqlConn {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
