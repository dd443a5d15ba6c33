package repository

import (
	"context"

	domainRepo "github.com/sangkips/cafepos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key carrying the active transaction handle
const txKey ctxKey = "gorm_tx"

// withTx stores a transaction handle in the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// dbFromContext resolves the database handle for a call: the transaction in
// the context when one is active, the base handle otherwise. Every repository
// in this package resolves through this, so any repository call made with a
// transactional context automatically joins that transaction.
func dbFromContext(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return base
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared gorm handle
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
