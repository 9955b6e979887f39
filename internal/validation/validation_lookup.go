package validation

import (
	"context"
	"database/sql"

	"out-of-office/internal/domain"
	"out-of-office/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=validation_lookup.go -destination=mock/validation_lookup_mock.go -package=mock

// Lookup answers the existence questions behind cross-entity rules.
type Lookup interface {
	WithTx(tx *sql.Tx) Lookup
	EmployeeExists(ctx context.Context, id string) (bool, error)
	EmployeeHoldsPosition(ctx context.Context, id string, position domain.Position) (bool, error)
	LeaveRequestExists(ctx context.Context, id string) (bool, error)
	ProjectExists(ctx context.Context, id string) (bool, error)
}

type lookup struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewLookup(db *gorm.DB) Lookup {
	return &lookup{db: db}
}

func (l *lookup) WithTx(tx *sql.Tx) Lookup {
	return &lookup{db: l.db, tx: tx}
}

func (l *lookup) conn(ctx context.Context) *gorm.DB {
	return dbtx.Bind(ctx, l.db, l.tx)
}

func (l *lookup) EmployeeExists(ctx context.Context, id string) (bool, error) {
	return l.exists(ctx, "employees", "id = ?", id)
}

func (l *lookup) EmployeeHoldsPosition(ctx context.Context, id string, position domain.Position) (bool, error) {
	return l.exists(ctx, "employees", "id = ? AND position = ?", id, string(position))
}

func (l *lookup) LeaveRequestExists(ctx context.Context, id string) (bool, error) {
	return l.exists(ctx, "leave_requests", "id = ?", id)
}

func (l *lookup) ProjectExists(ctx context.Context, id string) (bool, error) {
	return l.exists(ctx, "projects", "id = ?", id)
}

func (l *lookup) exists(ctx context.Context, table, where string, args ...any) (bool, error) {
	var count int64
	err := l.conn(ctx).Table(table).Where(where, args...).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
