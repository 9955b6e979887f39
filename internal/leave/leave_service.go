package leave

import (
	"context"
	"database/sql"
	"time"

	"out-of-office/internal/approval"
	"out-of-office/internal/employee"
	"out-of-office/internal/events"
	leaveerrors "out-of-office/internal/leave/errors"
	"out-of-office/internal/messaging/kafka"
	"out-of-office/internal/metrics"
	"out-of-office/internal/shared/contextutil"
	"out-of-office/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	entityLeave    = "leave_request"
	entityApproval = "approval_request"
)

// Service drives the leave request lifecycle. ApproveRequest and
// RejectRequest make it an approval.Decider.
//
//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	SubmitOrCancel(ctx context.Context, id string) (LeaveResponse, error)
	ApproveRequest(ctx context.Context, approvalID string) (approval.ApprovalResponse, error)
	RejectRequest(ctx context.Context, approvalID, reason string) (approval.ApprovalResponse, error)
	Delete(ctx context.Context, id string) error
}

var _ approval.Decider = (Service)(nil)

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	ledger       approval.Ledger
	gate         validation.Gate
	outbox       kafka.OutboxRepository
	cache        approval.PendingCache
	metrics      *metrics.Metrics
	now          func() time.Time
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	ledger approval.Ledger,
	gate validation.Gate,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employeeRepo, ledger, gate, nil, nil, nil, logger...)
}

// NewServiceWithOutbox also records a lifecycle event per status change in
// the outbox, invalidates the pending approvals cache after commit and
// reports workflow metrics. Any of outbox, cache and m may be nil.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	ledger approval.Ledger,
	gate validation.Gate,
	outbox kafka.OutboxRepository,
	cache approval.PendingCache,
	m *metrics.Metrics,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if cache == nil {
		cache = approval.NewPendingCache(nil, 0, l)
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		ledger:       ledger,
		gate:         gate,
		outbox:       outbox,
		cache:        cache,
		metrics:      m,
		now:          time.Now,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	in := validation.LeaveRequestInput{
		EmployeeID:    req.EmployeeID,
		AbsenceReason: req.AbsenceReason,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if req.Comment != nil {
		in.Comment = *req.Comment
	}
	if err := s.validate(ctx, tx, in); err != nil {
		return LeaveResponse{}, err
	}

	start, _ := validation.ParseDate(req.StartDate)
	end, _ := validation.ParseDate(req.EndDate)
	l := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    uuid.MustParse(req.EmployeeID),
		AbsenceReason: req.AbsenceReason,
		StartDate:     start,
		EndDate:       end,
		Comment:       req.Comment,
		Status:        StatusNew,
		Version:       1,
	}

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]LeaveResponse, error) {
	s.logger.Debug("get all leaves requested",
		zap.String("status", filter.Status),
		zap.String("employee_id", filter.EmployeeID),
	)
	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if uuid.Validate(id) != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave requested", zap.String("request_id", rid), zap.String("leave_id", id))

	if uuid.Validate(id) != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !l.Status.Editable() {
		s.logger.Warn("update leave rejected by status",
			zap.String("leave_id", id),
			zap.String("status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.ErrDetailsImmutable
	}

	in := validation.LeaveRequestInput{
		EmployeeID:    l.EmployeeID.String(),
		AbsenceReason: req.AbsenceReason,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if req.Comment != nil {
		in.Comment = *req.Comment
	}
	if err := s.validate(ctx, tx, in); err != nil {
		return LeaveResponse{}, err
	}

	l.AbsenceReason = req.AbsenceReason
	l.StartDate, _ = validation.ParseDate(req.StartDate)
	l.EndDate, _ = validation.ParseDate(req.EndDate)
	l.Comment = req.Comment

	if err := s.save(ctx, qtx, l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave success", zap.String("request_id", rid), zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) SubmitOrCancel(ctx context.Context, id string) (LeaveResponse, error) {
	resp, err := s.submitOrCancel(ctx, id)
	if err != nil {
		s.metrics.ObserveFailure("submit_or_cancel", err)
	}
	return resp, err
}

func (s *service) submitOrCancel(ctx context.Context, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("toggle leave requested", zap.String("request_id", rid), zap.String("leave_id", id))

	if uuid.Validate(id) != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("toggle leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ledger := s.ledger.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	from := l.Status
	var (
		eventType string
		created   *approval.ApprovalRequest
		touched   []string
	)

	switch {
	case from.CanTransitionTo(StatusSubmitted):
		emp, err := s.employeeRepo.WithTx(tx).FindByID(ctx, l.EmployeeID.String())
		if err != nil {
			return LeaveResponse{}, mapEmployeeError(err)
		}
		if emp.PeoplePartnerID == nil {
			s.logger.Warn("submit leave without people partner",
				zap.String("leave_id", id),
				zap.String("employee_id", emp.ID.String()),
			)
			return LeaveResponse{}, leaveerrors.ErrApproverNotAssigned
		}

		created, err = ledger.Create(ctx, approval.CreateApprovalRequest{
			ApproverID:     emp.PeoplePartnerID.String(),
			LeaveRequestID: l.ID.String(),
		})
		if err != nil {
			return LeaveResponse{}, err
		}
		touched = approval.ApproverIDs(*created)
		l.Status = StatusSubmitted
		eventType = events.LeaveSubmitted

	case from.CanTransitionTo(StatusCanceled):
		removed, err := ledger.DeleteByLeaveRequest(ctx, l.ID.String())
		if err != nil {
			return LeaveResponse{}, err
		}
		touched = approval.ApproverIDs(removed...)
		l.Status = StatusCanceled
		eventType = events.LeaveCanceled

	default:
		s.logger.Warn("toggle leave rejected by status",
			zap.String("leave_id", id),
			zap.String("status", string(from)),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	if err := s.save(ctx, qtx, l); err != nil {
		return LeaveResponse{}, err
	}
	if err := s.record(ctx, tx, eventType, l, created, 0); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("toggle leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.metrics.ObserveTransition(entityLeave, string(from), string(l.Status))
	s.cache.Invalidate(ctx, touched)
	s.logger.Info("toggle leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(l.Status)),
	)
	return mapToResponse(*l), nil
}

func (s *service) ApproveRequest(ctx context.Context, approvalID string) (approval.ApprovalResponse, error) {
	resp, err := s.applyOutcome(ctx, approvalID, StatusApproved, "")
	if err != nil {
		s.metrics.ObserveFailure("approve", err)
	}
	return resp, err
}

func (s *service) RejectRequest(ctx context.Context, approvalID, reason string) (approval.ApprovalResponse, error) {
	resp, err := s.applyOutcome(ctx, approvalID, StatusRejected, reason)
	if err != nil {
		s.metrics.ObserveFailure("reject", err)
	}
	return resp, err
}

// applyOutcome decides the approval and carries the decision over to its
// leave request. An approval also credits the employee's balance. All of it
// commits or none of it does.
func (s *service) applyOutcome(ctx context.Context, approvalID string, outcome Status, reason string) (approval.ApprovalResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply approval outcome requested",
		zap.String("request_id", rid),
		zap.String("approval_id", approvalID),
		zap.String("outcome", string(outcome)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply outcome begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return approval.ApprovalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ledger := s.ledger.WithTx(tx)

	var a *approval.ApprovalRequest
	if outcome == StatusApproved {
		a, err = ledger.Approve(ctx, approvalID)
	} else {
		a, err = ledger.Reject(ctx, approvalID, reason)
	}
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	l, err := qtx.FindByID(ctx, a.LeaveRequestID.String())
	if err != nil {
		return approval.ApprovalResponse{}, mapRepositoryError(err)
	}
	from := l.Status
	if !from.CanTransitionTo(outcome) {
		s.logger.Warn("approval outcome on leave in wrong status",
			zap.String("approval_id", approvalID),
			zap.String("leave_id", l.ID.String()),
			zap.String("status", string(from)),
		)
		return approval.ApprovalResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = outcome
	if err := s.save(ctx, qtx, l); err != nil {
		return approval.ApprovalResponse{}, err
	}

	days := 0
	eventType := events.LeaveRejected
	if outcome == StatusApproved {
		eventType = events.LeaveApproved
		days = ComputeAbsenceDays(l.StartDate, l.EndDate)
		if err := s.employeeRepo.WithTx(tx).AddAbsenceBalance(ctx, l.EmployeeID.String(), days); err != nil {
			s.logger.Error("absence balance update failed",
				zap.String("employee_id", l.EmployeeID.String()),
				zap.Int("days", days),
				zap.Error(err),
			)
			return approval.ApprovalResponse{}, mapEmployeeError(err)
		}
	}

	if err := s.record(ctx, tx, eventType, l, a, days); err != nil {
		return approval.ApprovalResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply outcome commit failed", zap.String("request_id", rid), zap.Error(err))
		return approval.ApprovalResponse{}, err
	}

	s.metrics.ObserveTransition(entityApproval, string(approval.StatusNew), string(a.Status))
	s.metrics.ObserveTransition(entityLeave, string(from), string(l.Status))
	s.metrics.AddBalanceDays(days)
	s.cache.Invalidate(ctx, approval.ApproverIDs(*a))
	s.logger.Info("apply approval outcome success",
		zap.String("request_id", rid),
		zap.String("approval_id", approvalID),
		zap.String("leave_id", l.ID.String()),
		zap.String("outcome", string(outcome)),
		zap.Int("absence_days", days),
	)
	return approval.ToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete leave requested", zap.String("request_id", rid), zap.String("leave_id", id))

	if uuid.Validate(id) != nil {
		return leaveerrors.ErrLeaveNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	removed, err := s.ledger.WithTx(tx).DeleteByLeaveRequest(ctx, id)
	if err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, approval.ApproverIDs(removed...))
	s.logger.Info("delete leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.Int("approvals_removed", len(removed)),
	)
	return nil
}

func (s *service) validate(ctx context.Context, tx *sql.Tx, in validation.LeaveRequestInput) error {
	res, err := s.gate.WithTx(tx).ValidateLeaveRequest(ctx, in)
	if err != nil {
		s.logger.Error("leave validation lookup failed", zap.Error(err))
		return err
	}
	if !res.Valid {
		s.logger.Warn("leave request invalid", zap.Any("errors", res.Errors))
		return res.Err()
	}
	return nil
}

func (s *service) save(ctx context.Context, qtx Repository, l *LeaveRequest) error {
	ok, err := qtx.Update(ctx, l)
	if err != nil {
		s.logger.Error("leave persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return mapRepositoryError(err)
	}
	if !ok {
		s.logger.Warn("leave modified concurrently",
			zap.String("leave_id", l.ID.String()),
			zap.Int("version", l.Version),
		)
		return leaveerrors.ErrConcurrentModification
	}
	return nil
}

func (s *service) record(
	ctx context.Context,
	tx *sql.Tx,
	eventType string,
	l *LeaveRequest,
	a *approval.ApprovalRequest,
	days int,
) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload := events.LeaveLifecycleEvent{
		EventType:      eventType,
		RequestID:      rid,
		LeaveRequestID: l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		Status:         string(l.Status),
		AbsenceDays:    days,
		OccurredAt:     s.now().UTC(),
	}
	if a != nil {
		payload.ApprovalRequestID = a.ID.String()
		payload.ApproverID = a.ApproverID.String()
	}

	event, err := kafka.NewLeaveLifecycleEvent(payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox write failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		AbsenceReason: l.AbsenceReason,
		StartDate:     l.StartDate.Format(validation.DateLayout),
		EndDate:       l.EndDate.Format(validation.DateLayout),
		AbsenceDays:   ComputeAbsenceDays(l.StartDate, l.EndDate),
		Comment:       l.Comment,
		Status:        string(l.Status),
		Version:       l.Version,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapToResponse(l))
	}
	return out
}
