// Package db holds the transaction plumbing and query scopes the
// repositories share.
package db

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager lets a use case span several repository calls with
// one database transaction.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction commits when fn returns nil and rolls back otherwise.
// Repositories handed the ctx passed to fn join the transaction.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn picks the transaction carried by ctx, if any.
func conn(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		base = tx
	}
	return base.WithContext(ctx)
}

// WithDeadline returns the connection for ctx bounded by timeout, which covers
// waiting for a pooled connection as well as the statement itself. A zero
// timeout leaves ctx unchanged.
func WithDeadline(ctx context.Context, base *gorm.DB, timeout time.Duration) (*gorm.DB, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	return conn(ctx, base), cancel
}
