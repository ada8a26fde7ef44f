package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"raspadinha/internal/model"
)

// ScratchSymbolRepository defines scratch symbol persistence operations.
type ScratchSymbolRepository interface {
	Create(ctx context.Context, symbol *model.ScratchSymbol) error
	Update(ctx context.Context, symbol *model.ScratchSymbol) error
	ListByCardID(ctx context.Context, cardID uuid.UUID) ([]model.ScratchSymbol, error)
	// DecrementRemaining takes one unit of a limited prize, but only if the stock
	// still equals expected. It reports false when another request got there first.
	DecrementRemaining(ctx context.Context, id uuid.UUID, expected int) (bool, error)
}

type scratchSymbolRepository struct {
	db *gorm.DB
}

// NewScratchSymbolRepository creates a new symbol repository.
func NewScratchSymbolRepository(db *gorm.DB) ScratchSymbolRepository {
	return &scratchSymbolRepository{db: db}
}

// Create creates a new symbol.
func (r *scratchSymbolRepository) Create(ctx context.Context, symbol *model.ScratchSymbol) error {
	return r.db.WithContext(ctx).Create(symbol).Error
}

// Update updates an existing symbol.
func (r *scratchSymbolRepository) Update(ctx context.Context, symbol *model.ScratchSymbol) error {
	return r.db.WithContext(ctx).Save(symbol).Error
}

// ListByCardID lists the symbols of a scratch card in a stable order.
func (r *scratchSymbolRepository) ListByCardID(ctx context.Context, cardID uuid.UUID) ([]model.ScratchSymbol, error) {
	var symbols []model.ScratchSymbol
	if err := r.db.WithContext(ctx).
		Where("scratch_card_id = ?", cardID).
		Order("created_at ASC, id ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// DecrementRemaining is a compare-and-swap on remaining_quantity.
func (r *scratchSymbolRepository) DecrementRemaining(ctx context.Context, id uuid.UUID, expected int) (bool, error) {
	if expected <= 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Model(&model.ScratchSymbol{}).
		Where("id = ? AND remaining_quantity = ?", id, expected).
		Update("remaining_quantity", gorm.Expr("remaining_quantity - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
