package dbtx_test

import (
	"context"
	"testing"

	"out-of-office/internal/shared/dbtx"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestBind(t *testing.T) {
	ctx := context.Background()

	t.Run("nil tx runs on the pool", func(t *testing.T) {
		gdb, mock := setupGorm(t)
		mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

		bound := dbtx.Bind(ctx, gdb, nil)
		assert.Equal(t, gdb.Statement.ConnPool, bound.Statement.ConnPool)
		assert.NoError(t, bound.Exec("SELECT 1").Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("statements run inside the transaction", func(t *testing.T) {
		gdb, mock := setupGorm(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE employees SET out_of_office_balance`).
			WithArgs(int64(3), "emp-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		sqlDB, err := gdb.DB()
		require.NoError(t, err)
		tx, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		res := dbtx.Bind(ctx, gdb, tx).
			Exec("UPDATE employees SET out_of_office_balance = out_of_office_balance + ? WHERE id = ?", int64(3), "emp-1")
		assert.NoError(t, res.Error)
		assert.Equal(t, int64(1), res.RowsAffected)

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("root handle keeps its pool after a committed tx", func(t *testing.T) {
		gdb, mock := setupGorm(t)
		root := gdb.Statement.ConnPool

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM approval_requests`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

		sqlDB, err := gdb.DB()
		require.NoError(t, err)
		tx, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		bound := dbtx.Bind(ctx, gdb, tx)
		assert.Equal(t, root, gdb.Statement.ConnPool)
		assert.NotEqual(t, root, bound.Statement.ConnPool)

		assert.NoError(t, bound.Exec("DELETE FROM approval_requests WHERE id = ?", "a-1").Error)
		require.NoError(t, tx.Commit())

		assert.NoError(t, gdb.WithContext(ctx).Exec("SELECT 1").Error)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent bindings stay on their own tx", func(t *testing.T) {
		gdb, mock := setupGorm(t)
		mock.ExpectBegin()
		mock.ExpectBegin()

		sqlDB, err := gdb.DB()
		require.NoError(t, err)
		first, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)
		second, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		a := dbtx.Bind(ctx, gdb, first)
		b := dbtx.Bind(ctx, gdb, second)

		assert.Equal(t, first, a.Statement.ConnPool)
		assert.Equal(t, second, b.Statement.ConnPool)
		assert.Equal(t, first, a.WithContext(ctx).Statement.ConnPool)
	})
}
