package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

type stubDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &stubDB{}
	tx := &stubTx{}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM bookings":        "select",
		"  INSERT INTO bookings (id)":    "insert",
		"UPDATE\nbookings SET status=$1": "update",
		"":                               "unknown",
	}
	for query, want := range tests {
		assert.Equal(t, want, operation(query), query)
	}
}

func TestPlainDB_ImplementsBeginner(t *testing.T) {
	var _ interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
	} = PlainDB{}
	var _ interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
	} = &DB{}
}
