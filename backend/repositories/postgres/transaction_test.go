package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockTxManager(t *testing.T) (*TransactionManager, *DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := &DB{DB: sqlDB, logger: zap.NewNop()}
	return NewTransactionManager(db, zap.NewNop()), db, mock
}

func TestTransactionManager_InTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		tm, db, mock := newMockTxManager(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM role_reports").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := tm.InTransaction(context.Background(), func(ctx context.Context) error {
			_, ok := txFromContext(ctx)
			assert.True(t, ok)
			_, err := db.executor(ctx).ExecContext(ctx, "DELETE FROM role_reports")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		tm, _, mock := newMockTxManager(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := tm.InTransaction(context.Background(), func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		tm, _, mock := newMockTxManager(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = tm.InTransaction(context.Background(), func(ctx context.Context) error {
				panic("unexpected")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		tm, _, mock := newMockTxManager(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.InTransaction(context.Background(), func(ctx context.Context) error {
			return tm.InTransaction(ctx, func(ctx context.Context) error { return nil })
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		tm, _, mock := newMockTxManager(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err := tm.InTransaction(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.False(t, called)
	})

	t.Run("commit failure", func(t *testing.T) {
		tm, _, mock := newMockTxManager(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err := tm.InTransaction(context.Background(), func(ctx context.Context) error { return nil })

		assert.ErrorContains(t, err, "failed to commit transaction")
	})
}

func TestTxOptions(t *testing.T) {
	tm := NewTransactionManager(nil, zap.NewNop(), WithReadOnly(), WithIsolation(sql.LevelSerializable))

	assert.True(t, tm.opts.ReadOnly)
	assert.Equal(t, sql.LevelSerializable, tm.opts.Isolation)
}

func TestDB_ExecutorWithoutTransaction(t *testing.T) {
	_, db, _ := newMockTxManager(t)
	assert.Same(t, db.DB, db.executor(context.Background()))
}

func TestRepositoryFactory(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := &DB{DB: sqlDB, logger: zap.NewNop()}
	f := newRepositoryFactory(db, zap.NewNop())

	repos := f.NewRepositories()
	require.NotNil(t, repos.Permissions)
	assert.Same(t, db, f.DB())
	assert.NotNil(t, f.TransactionManager())

	mock.ExpectClose()
	require.NoError(t, f.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
