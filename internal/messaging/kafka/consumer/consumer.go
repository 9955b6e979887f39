package consumer

import (
	"context"
	"encoding/json"

	"out-of-office/internal/bootstrap"
	"out-of-office/internal/events"
	"out-of-office/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveLifecycle logs every leave lifecycle
// event. Undecodable messages are committed and skipped.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	sink bootstrap.EventLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		sink.Log(contextutil.WithRequestID(ctx, event.RequestID), bootstrap.EventLog{
			Action:  event.EventType,
			Message: "leave request " + event.LeaveRequestID + " is now " + event.Status,
			Meta: map[string]any{
				"leave_request_id":    event.LeaveRequestID,
				"employee_id":         event.EmployeeID,
				"approval_request_id": event.ApprovalRequestID,
				"approver_id":         event.ApproverID,
				"absence_days":        event.AbsenceDays,
				"occurred_at":         event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("leave lifecycle event logged",
			zap.String("event_type", event.EventType),
			zap.String("leave_request_id", event.LeaveRequestID),
		)
	}
}
