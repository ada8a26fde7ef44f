package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the scratch-card repositories so a unit of work can span them.
type Store interface {
	Cards() ScratchCardRepository
	Batches() ScratchBatchRepository
	Symbols() ScratchSymbolRepository
	Chances() ScratchChanceRepository
	// WithTransaction executes fn with a Store bound to one database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Cards() ScratchCardRepository     { return NewScratchCardRepository(s.db) }
func (s *gormStore) Batches() ScratchBatchRepository  { return NewScratchBatchRepository(s.db) }
func (s *gormStore) Symbols() ScratchSymbolRepository { return NewScratchSymbolRepository(s.db) }
func (s *gormStore) Chances() ScratchChanceRepository { return NewScratchChanceRepository(s.db) }

// WithTransaction executes a function within a database transaction.
func (s *gormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormStore{db: tx})
	})
}
