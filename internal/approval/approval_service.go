package approval

import (
	"context"
	"database/sql"
	"errors"

	approvalerrors "out-of-office/internal/approval/errors"
	"out-of-office/internal/shared/apperror"
	"out-of-office/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// leaveStatusSubmitted mirrors the leave request status that expects an
// approver's decision.
const leaveStatusSubmitted = "SUBMITTED"

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateApprovalRequest) (ApprovalResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]ApprovalResponse, error)
	GetByID(ctx context.Context, id string) (ApprovalResponse, error)
	GetPendingForApprover(ctx context.Context, approverID string) ([]ApprovalResponse, error)
	Delete(ctx context.Context, id string) error
}

// Decider applies a decision to an approval and reconciles the leave request
// it belongs to in the same transaction.
type Decider interface {
	ApproveRequest(ctx context.Context, approvalID string) (ApprovalResponse, error)
	RejectRequest(ctx context.Context, approvalID, reason string) (ApprovalResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger Ledger
	cache  PendingCache
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledger Ledger, cache PendingCache, logger ...*zap.Logger) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	if cache == nil {
		cache = NewPendingCache(nil, 0, l)
	}
	return &service{
		db:     db,
		repo:   repo,
		ledger: ledger,
		cache:  cache,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateApprovalRequest) (ApprovalResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create approval requested",
		zap.String("request_id", rid),
		zap.String("approver_id", req.ApproverID),
		zap.String("leave_request_id", req.LeaveRequestID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create approval begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ApprovalResponse{}, err
	}
	defer tx.Rollback()

	// Direct creation only re-attaches an approver to a submitted request;
	// unknown or malformed ids are reported by the ledger's validation.
	if uuid.Validate(req.LeaveRequestID) == nil {
		status, err := s.repo.WithTx(tx).LeaveRequestStatus(ctx, req.LeaveRequestID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			s.logger.Error("create approval leave lookup failed", zap.String("request_id", rid), zap.Error(err))
			return ApprovalResponse{}, err
		case status != leaveStatusSubmitted:
			s.logger.Warn("create approval refused",
				zap.String("request_id", rid),
				zap.String("leave_request_id", req.LeaveRequestID),
				zap.String("leave_status", status),
			)
			return ApprovalResponse{}, approvalerrors.ErrLeaveNotAwaitingApproval
		}
	}

	a, err := s.ledger.WithTx(tx).Create(ctx, req)
	if err != nil {
		return ApprovalResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create approval commit failed", zap.String("request_id", rid), zap.Error(err))
		return ApprovalResponse{}, err
	}

	s.cache.Invalidate(ctx, ApproverIDs(*a))
	s.logger.Info("create approval success",
		zap.String("request_id", rid),
		zap.String("approval_id", a.ID.String()),
	)
	return ToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]ApprovalResponse, error) {
	s.logger.Debug("get all approvals requested",
		zap.String("status", filter.Status),
		zap.String("approver_id", filter.ApproverID),
	)
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all approvals failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ApprovalResponse, error) {
	s.logger.Debug("get approval by id requested", zap.String("approval_id", id))
	if uuid.Validate(id) != nil {
		return ApprovalResponse{}, approvalerrors.ErrApprovalNotFound
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ApprovalResponse{}, mapRepositoryError(err)
	}
	return ToResponse(*a), nil
}

func (s *service) GetPendingForApprover(ctx context.Context, approverID string) ([]ApprovalResponse, error) {
	s.logger.Debug("get pending approvals requested", zap.String("approver_id", approverID))
	if uuid.Validate(approverID) != nil {
		return nil, apperror.Validation([]apperror.FieldError{{Field: "approver_id", Message: "Approver Id must be a valid id"}})
	}

	return s.cache.GetOrLoad(ctx, approverID, func(ctx context.Context) ([]ApprovalResponse, error) {
		items, err := s.repo.FindAll(ctx, Filter{Status: string(StatusNew), ApproverID: approverID})
		if err != nil {
			s.logger.Error("get pending approvals failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}
		return mapToListResponse(items), nil
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete approval requested",
		zap.String("request_id", rid),
		zap.String("approval_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete approval begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	removed, err := s.ledger.WithTx(tx).Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete approval commit failed", zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, ApproverIDs(*removed))
	s.logger.Info("delete approval success", zap.String("approval_id", id))
	return nil
}

func mapToListResponse(items []ApprovalRequest) []ApprovalResponse {
	res := make([]ApprovalResponse, len(items))
	for i, a := range items {
		res[i] = ToResponse(a)
	}
	return res
}
