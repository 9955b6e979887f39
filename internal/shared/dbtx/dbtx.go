package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a ctx-scoped gorm handle whose statements run on tx. A nil tx
// yields a plain db.WithContext(ctx) so repositories work outside a unit of
// work as well. db itself is never modified.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db.WithContext(ctx)
	}
	// Context forces gorm to clone the statement, so the ConnPool swap stays
	// on the returned session.
	bound := db.Session(&gorm.Session{
		NewDB:                  true,
		SkipDefaultTransaction: true,
		Context:                ctx,
	})
	bound.Statement.ConnPool = tx
	return bound
}
