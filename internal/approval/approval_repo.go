package approval

import (
	"context"
	"database/sql"
	"time"

	"out-of-office/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	Status         string
	ApproverID     string
	LeaveRequestID string
}

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *ApprovalRequest) error
	FindAll(ctx context.Context, filter Filter) ([]ApprovalRequest, error)
	FindByID(ctx context.Context, id string) (*ApprovalRequest, error)
	ExistsActiveForLeave(ctx context.Context, leaveRequestID string) (bool, error)
	LeaveRequestStatus(ctx context.Context, leaveRequestID string) (string, error)
	UpdateDecision(ctx context.Context, a *ApprovalRequest) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByLeaveRequest(ctx context.Context, leaveRequestID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, a *ApprovalRequest) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]ApprovalRequest, error) {
	var out []ApprovalRequest
	q := r.conn(ctx).Model(&ApprovalRequest{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ApproverID != "" {
		q = q.Where("approver_id = ?", filter.ApproverID)
	}
	if filter.LeaveRequestID != "" {
		q = q.Where("leave_request_id = ?", filter.LeaveRequestID)
	}
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ApprovalRequest, error) {
	var a ApprovalRequest
	if err := r.conn(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ExistsActiveForLeave(ctx context.Context, leaveRequestID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&ApprovalRequest{}).
		Where("leave_request_id = ? AND status = ?", leaveRequestID, string(StatusNew)).
		Count(&count).Error
	return count > 0, err
}

// LeaveRequestStatus reads the owning leave request's status under a share
// lock, so it cannot change before the caller's transaction ends.
func (r *repository) LeaveRequestStatus(ctx context.Context, leaveRequestID string) (string, error) {
	var status string
	res := r.conn(ctx).
		Table("leave_requests").
		Select("status").
		Where("id = ?", leaveRequestID).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Limit(1).
		Scan(&status)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return status, nil
}

// UpdateDecision writes the decision only while the row is still NEW. It
// reports false when another writer decided first.
func (r *repository) UpdateDecision(ctx context.Context, a *ApprovalRequest) (bool, error) {
	res := r.conn(ctx).
		Model(&ApprovalRequest{}).
		Where("id = ? AND status = ?", a.ID, string(StatusNew)).
		Updates(map[string]any{
			"status":     string(a.Status),
			"comment":    a.Comment,
			"decided_at": a.DecidedAt,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&ApprovalRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteByLeaveRequest(ctx context.Context, leaveRequestID string) (int64, error) {
	res := r.conn(ctx).Delete(&ApprovalRequest{}, "leave_request_id = ?", leaveRequestID)
	return res.RowsAffected, res.Error
}
