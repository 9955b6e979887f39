package leave

import (
	"context"
	"database/sql"
	"time"

	"out-of-office/internal/shared/dbtx"

	"gorm.io/gorm"
)

type Filter struct {
	Status     string
	EmployeeID string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter Filter) ([]LeaveRequest, error)
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) (bool, error)
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	q := r.conn(ctx).Model(&LeaveRequest{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	err := q.Order("start_date DESC").Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// Update writes l only if the stored version still equals l.Version and
// bumps the version on success. It reports false when another writer got
// there first.
func (r *repository) Update(ctx context.Context, l *LeaveRequest) (bool, error) {
	now := time.Now().UTC()
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND version = ?", l.ID, l.Version).
		Updates(map[string]any{
			"absence_reason": l.AbsenceReason,
			"start_date":     l.StartDate,
			"end_date":       l.EndDate,
			"comment":        l.Comment,
			"status":         string(l.Status),
			"version":        l.Version + 1,
			"updated_at":     now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	l.Version++
	l.UpdatedAt = now
	return true, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
