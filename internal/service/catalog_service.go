package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"raspadinha/internal/cache"
	apperrors "raspadinha/internal/errors"
	"raspadinha/internal/model"
	"raspadinha/internal/repository"
)

const catalogKeyPrefix = "scratch_card:"

// SymbolView is a symbol as shown to players. Odds and stock stay private.
type SymbolView struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	ImageURL   string          `json:"image_url"`
	PrizeValue decimal.Decimal `json:"prize_value" swaggertype:"number"`
}

// ScratchCardView is the public catalog entry for a scratch card.
type ScratchCardView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	IsActive    bool            `json:"is_active"`
	Symbols     []SymbolView    `json:"symbols"`
	// RemainingCards is nil when the card has no single active batch.
	RemainingCards *int `json:"remaining_cards"`
}

// CatalogService serves the public scratch card catalog.
type CatalogService interface {
	GetScratchCard(ctx context.Context, id uuid.UUID) (*ScratchCardView, error)
}

type catalogService struct {
	store repository.Store
	cache *cache.Client
	ttl   time.Duration
}

// NewCatalogService creates a new catalog service. A nil cache disables caching.
func NewCatalogService(store repository.Store, cacheClient *cache.Client, ttl time.Duration) CatalogService {
	return &catalogService{
		store: store,
		cache: cacheClient,
		ttl:   ttl,
	}
}

func (s *catalogService) GetScratchCard(ctx context.Context, id uuid.UUID) (*ScratchCardView, error) {
	key := CatalogCacheKey(id)

	var cached ScratchCardView
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	card, err := s.store.Cards().FindByIDWithSymbols(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScratchCardNotFound
		}
		return nil, fmt.Errorf("load scratch card: %w", err)
	}

	batches, err := s.store.Batches().FindActiveByCardID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load active batch: %w", err)
	}

	view := toScratchCardView(card, batches)
	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, view, s.ttl); err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("key", key).Msg("catalog cache write skipped")
		}
	}
	return view, nil
}

// CatalogCacheKey is the cache key of a scratch card's public view.
func CatalogCacheKey(id uuid.UUID) string {
	return catalogKeyPrefix + id.String()
}

func toScratchCardView(card *model.ScratchCard, batches []model.ScratchCardBatch) *ScratchCardView {
	view := &ScratchCardView{
		ID:          card.ID,
		Title:       card.Title,
		Description: card.Description,
		ImageURL:    card.ImageURL,
		Price:       card.Price,
		IsActive:    card.IsActive,
		Symbols: lo.Map(card.Symbols, func(s model.ScratchSymbol, _ int) SymbolView {
			return SymbolView{ID: s.ID, Name: s.Name, ImageURL: s.ImageURL, PrizeValue: s.PrizeValue}
		}),
	}
	if len(batches) == 1 {
		remaining := batches[0].Remaining()
		view.RemainingCards = &remaining
	}
	return view
}
