package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikhov/CSP-BookingService/pkg/dbmetrics"
)

type fakeTx struct{}

func (fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeBeginner struct {
	begins int
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	return fakeTx{}, nil
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	serializationErr := &pq.Error{Code: "40001"}

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationErr
	})

	require.Error(t, err)
	assert.ErrorAs(t, err, new(*pq.Error))
	assert.Equal(t, serializationFailureRetries, attempts)
	assert.Equal(t, serializationFailureRetries, db.begins)
}

func TestDoSerializable_SucceedsAfterRetry(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	someErr := errors.New("constraint violation")

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return someErr
	})

	require.ErrorIs(t, err, someErr)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_TransactionInContext(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
}
