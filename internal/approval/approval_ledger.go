package approval

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	approvalerrors "out-of-office/internal/approval/errors"
	"out-of-office/internal/shared/apperror"
	"out-of-office/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxReasonLength = 1000

//go:generate mockgen -source=approval_ledger.go -destination=mock/approval_ledger_mock.go -package=mock

// Ledger owns approval request state. It never opens a transaction; callers
// bind it to theirs with WithTx so approval changes commit together with the
// leave request they belong to.
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	Create(ctx context.Context, req CreateApprovalRequest) (*ApprovalRequest, error)
	Approve(ctx context.Context, id string) (*ApprovalRequest, error)
	Reject(ctx context.Context, id, reason string) (*ApprovalRequest, error)
	Delete(ctx context.Context, id string) (*ApprovalRequest, error)
	DeleteByLeaveRequest(ctx context.Context, leaveRequestID string) ([]ApprovalRequest, error)
}

type ledger struct {
	repo   Repository
	gate   validation.Gate
	now    func() time.Time
	logger *zap.Logger
}

func NewLedger(repo Repository, gate validation.Gate, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("approval.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.ledger")
	}
	return &ledger{repo: repo, gate: gate, now: time.Now, logger: l}
}

func (l *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{
		repo:   l.repo.WithTx(tx),
		gate:   l.gate.WithTx(tx),
		now:    l.now,
		logger: l.logger,
	}
}

func (l *ledger) Create(ctx context.Context, req CreateApprovalRequest) (*ApprovalRequest, error) {
	in := validation.ApprovalRequestInput{
		ApproverID:     req.ApproverID,
		LeaveRequestID: req.LeaveRequestID,
	}
	if req.Comment != nil {
		in.Comment = *req.Comment
	}

	res, err := l.gate.ValidateApprovalRequest(ctx, in)
	if err != nil {
		l.logger.Error("approval validation lookup failed", zap.Error(err))
		return nil, err
	}
	if !res.Valid {
		l.logger.Warn("approval request invalid", zap.Any("errors", res.Errors))
		return nil, res.Err()
	}

	active, err := l.repo.ExistsActiveForLeave(ctx, req.LeaveRequestID)
	if err != nil {
		l.logger.Error("approval active lookup failed", zap.Error(err))
		return nil, err
	}
	if active {
		l.logger.Warn("approval already pending for leave request",
			zap.String("leave_request_id", req.LeaveRequestID),
		)
		return nil, approvalerrors.ErrActiveApprovalExists
	}

	a := &ApprovalRequest{
		ID:             uuid.New(),
		ApproverID:     uuid.MustParse(req.ApproverID),
		LeaveRequestID: uuid.MustParse(req.LeaveRequestID),
		Status:         StatusNew,
		Comment:        req.Comment,
	}
	if err := l.repo.Create(ctx, a); err != nil {
		l.logger.Error("approval persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return a, nil
}

func (l *ledger) Approve(ctx context.Context, id string) (*ApprovalRequest, error) {
	return l.decide(ctx, id, StatusApproved, nil)
}

func (l *ledger) Reject(ctx context.Context, id, reason string) (*ApprovalRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "reason", Message: "Reason is required"}})
	}
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "reason", Message: "Reason cannot be longer than 1000 characters"}})
	}
	return l.decide(ctx, id, StatusRejected, &reason)
}

func (l *ledger) decide(ctx context.Context, id string, target Status, comment *string) (*ApprovalRequest, error) {
	if uuid.Validate(id) != nil {
		return nil, approvalerrors.ErrApprovalNotFound
	}

	a, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if !a.Status.CanTransitionTo(target) {
		l.logger.Warn("approval decision on decided request",
			zap.String("approval_id", id),
			zap.String("status", string(a.Status)),
			zap.String("target", string(target)),
		)
		return nil, approvalerrors.ErrAlreadyDecided
	}

	decidedAt := l.now().UTC()
	a.Status = target
	a.DecidedAt = &decidedAt
	if comment != nil {
		a.Comment = comment
	}

	ok, err := l.repo.UpdateDecision(ctx, a)
	if err != nil {
		l.logger.Error("approval decision persist failed", zap.String("approval_id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	if !ok {
		l.logger.Warn("approval decided concurrently", zap.String("approval_id", id))
		return nil, approvalerrors.ErrConcurrentDecision
	}

	return a, nil
}

func (l *ledger) Delete(ctx context.Context, id string) (*ApprovalRequest, error) {
	if uuid.Validate(id) != nil {
		return nil, approvalerrors.ErrApprovalNotFound
	}

	a, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if a.Status != StatusNew {
		l.logger.Warn("approval delete refused",
			zap.String("approval_id", id),
			zap.String("status", string(a.Status)),
		)
		return nil, approvalerrors.ErrDecidedApprovalImmutable
	}
	if err := l.repo.Delete(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}
	return a, nil
}

// DeleteByLeaveRequest removes every approval attached to the leave request
// and returns what was removed.
func (l *ledger) DeleteByLeaveRequest(ctx context.Context, leaveRequestID string) ([]ApprovalRequest, error) {
	removed, err := l.repo.FindAll(ctx, Filter{LeaveRequestID: leaveRequestID})
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}

	if _, err := l.repo.DeleteByLeaveRequest(ctx, leaveRequestID); err != nil {
		l.logger.Error("approval bulk delete failed",
			zap.String("leave_request_id", leaveRequestID),
			zap.Error(err),
		)
		return nil, err
	}
	return removed, nil
}

// ApproverIDs lists the distinct approvers of the given requests.
func ApproverIDs(reqs ...ApprovalRequest) []string {
	seen := make(map[string]struct{}, len(reqs))
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		id := r.ApproverID.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func ToResponse(a ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{
		ID:             a.ID.String(),
		ApproverID:     a.ApproverID.String(),
		LeaveRequestID: a.LeaveRequestID.String(),
		Status:         string(a.Status),
		Comment:        a.Comment,
		DecidedAt:      a.DecidedAt,
		CreatedAt:      a.CreatedAt,
	}
}
