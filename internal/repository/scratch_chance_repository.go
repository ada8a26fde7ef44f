package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"raspadinha/internal/model"
)

// ScratchChanceRepository defines scratch chance persistence operations.
type ScratchChanceRepository interface {
	Create(ctx context.Context, chance *model.ScratchChance) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.ScratchChance, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ScratchChance, error)
	// MarkRevealed flags an unrevealed chance as revealed; already revealed chances are left alone.
	MarkRevealed(ctx context.Context, id, userID uuid.UUID, at time.Time) error
	// CountByBatch returns how many chances were sold against a batch and how many of them won.
	CountByBatch(ctx context.Context, batchID uuid.UUID) (sold int64, won int64, err error)
}

type scratchChanceRepository struct {
	db *gorm.DB
}

// NewScratchChanceRepository creates a new chance repository.
func NewScratchChanceRepository(db *gorm.DB) ScratchChanceRepository {
	return &scratchChanceRepository{db: db}
}

// Create inserts a chance.
func (r *scratchChanceRepository) Create(ctx context.Context, chance *model.ScratchChance) error {
	return r.db.WithContext(ctx).Create(chance).Error
}

// FindByIDForUser finds a chance owned by userID.
func (r *scratchChanceRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.ScratchChance, error) {
	var chance model.ScratchChance
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&chance).Error; err != nil {
		return nil, err
	}
	return &chance, nil
}

// ListByUser lists a user's chances, newest first.
func (r *scratchChanceRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ScratchChance, error) {
	var chances []model.ScratchChance
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&chances).Error; err != nil {
		return nil, err
	}
	return chances, nil
}

// MarkRevealed sets is_revealed and revealed_at once.
func (r *scratchChanceRepository) MarkRevealed(ctx context.Context, id, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ScratchChance{}).
		Where("id = ? AND user_id = ? AND is_revealed = ?", id, userID, false).
		Updates(map[string]interface{}{
			"is_revealed": true,
			"revealed_at": at,
		}).Error
}

// CountByBatch counts sales and wins recorded against a batch.
func (r *scratchChanceRepository) CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, int64, error) {
	var sold, won int64
	base := r.db.WithContext(ctx).Model(&model.ScratchChance{}).Where("batch_id = ?", batchID)
	if err := base.Session(&gorm.Session{}).Count(&sold).Error; err != nil {
		return 0, 0, err
	}
	if err := base.Session(&gorm.Session{}).Where("winning_symbol_id IS NOT NULL").Count(&won).Error; err != nil {
		return 0, 0, err
	}
	return sold, won, nil
}
