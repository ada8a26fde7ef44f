package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"raspadinha/internal/model"
)

// ScratchBatchRepository defines scratch card batch persistence operations.
type ScratchBatchRepository interface {
	Create(ctx context.Context, batch *model.ScratchCardBatch) error
	Update(ctx context.Context, batch *model.ScratchCardBatch) error
	// FindActiveByCardID returns every batch flagged active for the card.
	FindActiveByCardID(ctx context.Context, cardID uuid.UUID) ([]model.ScratchCardBatch, error)
	ListAll(ctx context.Context) ([]model.ScratchCardBatch, error)
	// IncrementCounters records one sale, and one prize when won is true.
	IncrementCounters(ctx context.Context, id uuid.UUID, won bool) error
	SetCounters(ctx context.Context, id uuid.UUID, cardsSold, prizesDistributed int) error
}

type scratchBatchRepository struct {
	db *gorm.DB
}

// NewScratchBatchRepository creates a new batch repository.
func NewScratchBatchRepository(db *gorm.DB) ScratchBatchRepository {
	return &scratchBatchRepository{db: db}
}

// Create creates a new batch.
func (r *scratchBatchRepository) Create(ctx context.Context, batch *model.ScratchCardBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// Update updates an existing batch.
func (r *scratchBatchRepository) Update(ctx context.Context, batch *model.ScratchCardBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// FindActiveByCardID finds the active batches of a scratch card.
func (r *scratchBatchRepository) FindActiveByCardID(ctx context.Context, cardID uuid.UUID) ([]model.ScratchCardBatch, error) {
	var batches []model.ScratchCardBatch
	if err := r.db.WithContext(ctx).
		Where("scratch_card_id = ? AND is_active = ?", cardID, true).
		Order("created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// ListAll lists every batch.
func (r *scratchBatchRepository) ListAll(ctx context.Context) ([]model.ScratchCardBatch, error) {
	var batches []model.ScratchCardBatch
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// IncrementCounters bumps the sale counters in a single statement.
func (r *scratchBatchRepository) IncrementCounters(ctx context.Context, id uuid.UUID, won bool) error {
	prizes := 0
	if won {
		prizes = 1
	}
	res := r.db.WithContext(ctx).Model(&model.ScratchCardBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cards_sold":         gorm.Expr("cards_sold + 1"),
			"prizes_distributed": gorm.Expr("prizes_distributed + ?", prizes),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetCounters overwrites the sale counters.
func (r *scratchBatchRepository) SetCounters(ctx context.Context, id uuid.UUID, cardsSold, prizesDistributed int) error {
	return r.db.WithContext(ctx).Model(&model.ScratchCardBatch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cards_sold":         cardsSold,
			"prizes_distributed": prizesDistributed,
		}).Error
}
