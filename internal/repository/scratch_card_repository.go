package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"raspadinha/internal/model"
)

// ScratchCardRepository defines scratch card persistence operations.
type ScratchCardRepository interface {
	Create(ctx context.Context, card *model.ScratchCard) error
	Update(ctx context.Context, card *model.ScratchCard) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ScratchCard, error)
	FindByIDWithSymbols(ctx context.Context, id uuid.UUID) (*model.ScratchCard, error)
}

type scratchCardRepository struct {
	db *gorm.DB
}

// NewScratchCardRepository creates a new scratch card repository.
func NewScratchCardRepository(db *gorm.DB) ScratchCardRepository {
	return &scratchCardRepository{db: db}
}

// Create creates a new scratch card.
func (r *scratchCardRepository) Create(ctx context.Context, card *model.ScratchCard) error {
	return r.db.WithContext(ctx).Omit("Symbols", "Batches").Create(card).Error
}

// Update updates an existing scratch card.
func (r *scratchCardRepository) Update(ctx context.Context, card *model.ScratchCard) error {
	return r.db.WithContext(ctx).Omit("Symbols", "Batches").Save(card).Error
}

// FindByID finds a scratch card by ID.
func (r *scratchCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ScratchCard, error) {
	var card model.ScratchCard
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByIDWithSymbols finds a scratch card by ID with its symbols loaded.
func (r *scratchCardRepository) FindByIDWithSymbols(ctx context.Context, id uuid.UUID) (*model.ScratchCard, error) {
	var card model.ScratchCard
	err := r.db.WithContext(ctx).
		Preload("Symbols", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}
