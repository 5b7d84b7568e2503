package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	levels    []sql.IsolationLevel
	commitErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{commitErr: b.commitErr}
	b.txs = append(b.txs, tx)
	b.levels = append(b.levels, opts.Isolation)
	return tx, nil
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, beginner.levels[0])
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner, WithMaxRetries(2))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("wrapped: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, beginner.txs, 3)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[2].committed)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner, WithMaxRetries(1))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40001"}
	})

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Len(t, beginner.txs, 2)
}

func TestDo_DoesNotRetryBusinessErrors(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)
	errBusiness := errors.New("slot is not available")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	require.ErrorIs(t, err, errBusiness)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Len(t, beginner.txs, 1)
	assert.Equal(t, sql.LevelReadCommitted, beginner.levels[0])
}

func TestDo_CommitError(t *testing.T) {
	beginner := &fakeBeginner{commitErr: errors.New("connection reset")}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	require.ErrorIs(t, err, ErrCommitTx)
}

func TestAfterCompletion_RunsAfterCommit(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	var committedAtHook bool
	hookCalls := 0

	err := m.Do(context.Background(), func(ctx context.Context) error {
		AfterCompletion(ctx, func(context.Context) {
			hookCalls++
			committedAtHook = beginner.txs[0].committed
		})
		assert.Equal(t, 0, hookCalls)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, hookCalls)
	assert.True(t, committedAtHook)
}

func TestAfterCompletion_RunsAfterRollback(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)
	errBusiness := errors.New("discount exhausted")

	var rolledBackAtHook bool

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		AfterCompletion(ctx, func(context.Context) {
			rolledBackAtHook = beginner.txs[0].rolledBack
		})
		return errBusiness
	})

	require.ErrorIs(t, err, errBusiness)
	assert.True(t, rolledBackAtHook)
}

func TestAfterCompletion_NestedRunsOnceAfterOuter(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)
	hookCalls := 0

	err := m.Do(context.Background(), func(ctx context.Context) error {
		err := m.DoSerializable(ctx, func(ctx context.Context) error {
			AfterCompletion(ctx, func(context.Context) { hookCalls++ })
			return nil
		})
		assert.Equal(t, 0, hookCalls)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, hookCalls)
}

func TestAfterCompletion_WithoutTransactionRunsImmediately(t *testing.T) {
	hookCalls := 0

	AfterCompletion(context.Background(), func(context.Context) { hookCalls++ })

	assert.Equal(t, 1, hookCalls)
}
