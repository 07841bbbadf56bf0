package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewFromSQLX(sqlx.NewDb(raw, "postgres"), logger.NewNoopLogger()), mock
}

func TestWithTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO invoices").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE customers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		_, ok := GetTx(ctx)
		require.True(t, ok)
		if _, err := db.ExecContext(ctx, "INSERT INTO invoices (id) VALUES ($1)", "inv_1"); err != nil {
			return err
		}
		_, err := db.ExecContext(ctx, "UPDATE customers SET next_bill_date = $1", "2025-04-13")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := ierr.NewError("advance failed").Mark(ierr.ErrDatabase)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO invoices").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		if _, err := db.ExecContext(ctx, "INSERT INTO invoices (id) VALUES ($1)", "inv_1"); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = db.WithTx(context.Background(), func(ctx context.Context) error {
			panic("render exploded")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_NestedUsesSavepoint(t *testing.T) {
	db, mock := newMockDB(t)
	inner := errors.New("inner failed")

	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT sp_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ROLLBACK TO SAVEPOINT sp_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		err := db.WithTx(ctx, func(ctx context.Context) error { return inner })
		assert.ErrorIs(t, err, inner)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_BeginFails(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, ierr.Is(err, ierr.ErrDatabase))
}

func TestCommitTx_NoTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	assert.Error(t, db.CommitTx(context.Background()))
	assert.Error(t, db.RollbackTx(context.Background()))
}
