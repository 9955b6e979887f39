package project

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

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Project) error
	FindAll(ctx context.Context, filter Filter) ([]Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, p *Project) error
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

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Project, error) {
	var out []Project
	q := r.conn(ctx).Model(&Project{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		q = q.Where("project_type ILIKE ?", "%"+filter.Search+"%")
	}
	err := q.Order("start_date DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
