package employee

import (
	"context"
	"database/sql"

	"out-of-office/internal/shared/dbtx"

	"gorm.io/gorm"
)

type Filter struct {
	Status string
	Search string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter Filter) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	AddAbsenceBalance(ctx context.Context, id string, days int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Bind(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Employee, error) {
	var empls []Employee
	q := r.conn(ctx).Model(&Employee{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		q = q.Where("full_name ILIKE ?", "%"+filter.Search+"%")
	}
	err := q.Order("full_name ASC").Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

// AddAbsenceBalance adds days to the balance with a single UPDATE so
// concurrent approvals never lose an increment.
func (r *repository) AddAbsenceBalance(ctx context.Context, id string, days int) error {
	res := r.conn(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		UpdateColumn("out_of_office_balance", gorm.Expr("out_of_office_balance + ?", days))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
