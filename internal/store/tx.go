package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/giglance/giglance_be/internal/services/hiring"
)

// TxManager binds hiring.Stores to a single GORM transaction.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) InTx(ctx context.Context, fn func(hiring.Stores) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}

// NewStores builds the hiring store set over db (a connection or a tx).
func NewStores(db *gorm.DB) hiring.Stores {
	return hiring.Stores{
		Gigs: NewGigStore(db),
		Bids: NewBidStore(db),
	}
}
