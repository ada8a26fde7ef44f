package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "raspadinha/internal/errors"
	"raspadinha/internal/events"
	"raspadinha/internal/metrics"
	"raspadinha/internal/model"
	"raspadinha/internal/repository"
	"raspadinha/internal/scratch"
)

const (
	publishTimeout   = 2 * time.Second
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var tracer = otel.Tracer("raspadinha/internal/service")

// ChanceService sells and reveals scratch chances.
type ChanceService interface {
	// BuyScratchChance issues one chance with its outcome and grid already decided.
	BuyScratchChance(ctx context.Context, userID, scratchCardID uuid.UUID) (*model.ScratchChance, error)
	// RevealChance marks a chance as scratched. The outcome never changes.
	RevealChance(ctx context.Context, userID, chanceID uuid.UUID) (*model.ScratchChance, error)
	ListChances(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ScratchChance, error)
}

// CacheInvalidator drops cached entries. *cache.Client satisfies it.
type CacheInvalidator interface {
	Delete(ctx context.Context, key string) error
}

type chanceService struct {
	store     repository.Store
	publisher events.Publisher
	catalog   CacheInvalidator
	rng       scratch.RandomSource
}

// NewChanceService creates a new chance service. catalog, when set, has the
// card's public view dropped after every sale. rng must be safe for
// concurrent use; scratch.DefaultSource is.
func NewChanceService(store repository.Store, publisher events.Publisher, catalog CacheInvalidator, rng scratch.RandomSource) ChanceService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if rng == nil {
		rng = scratch.DefaultSource
	}
	return &chanceService{
		store:     store,
		publisher: publisher,
		catalog:   catalog,
		rng:       rng,
	}
}

// BuyScratchChance validates the card and its inventory, draws the outcome,
// claims limited stock and persists the chance.
func (s *chanceService) BuyScratchChance(ctx context.Context, userID, scratchCardID uuid.UUID) (*model.ScratchChance, error) {
	ctx, span := tracer.Start(ctx, "ChanceService.BuyScratchChance", trace.WithAttributes(
		attribute.String("scratch_card.id", scratchCardID.String()),
	))
	defer span.End()

	if scratchCardID == uuid.Nil {
		return nil, apperrors.ErrMissingScratchCardID
	}
	logger := zerolog.Ctx(ctx).With().Str("scratch_card_id", scratchCardID.String()).Logger()

	card, err := s.store.Cards().FindByID(ctx, scratchCardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScratchCardNotFound
		}
		return nil, fail(span, fmt.Errorf("load scratch card: %w", err))
	}
	if !card.IsActive {
		return nil, apperrors.ErrScratchCardInactive
	}

	batch, err := s.activeBatch(ctx, logger, card.ID)
	if err != nil {
		return nil, fail(span, err)
	}

	symbols, err := s.store.Symbols().ListByCardID(ctx, card.ID)
	if err != nil {
		return nil, fail(span, fmt.Errorf("load symbols: %w", err))
	}
	if len(symbols) == 0 {
		return nil, apperrors.ErrNoSymbols
	}

	outcome := scratch.Draw(symbols, s.rng)
	span.SetAttributes(
		attribute.Float64("scratch.win_probability", outcome.WinProbability),
		attribute.Bool("scratch.drawn_win", outcome.Winner != nil),
	)

	var (
		chance   *model.ScratchChance
		fellBack bool
	)
	err = s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		winner := outcome.Winner
		fellBack = false
		if winner != nil && winner.Limited() {
			claimed, err := tx.Symbols().DecrementRemaining(ctx, winner.ID, *winner.RemainingQuantity)
			if err != nil {
				return fmt.Errorf("claim prize stock: %w", err)
			}
			if !claimed {
				// another purchase took the unit we read; this play loses
				winner = nil
				fellBack = true
			}
		}

		chance = s.newChance(logger, userID, card.ID, batch.ID, symbols, winner)
		if err := tx.Chances().Create(ctx, chance); err != nil {
			return fmt.Errorf("create chance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fail(span, err)
	}

	if fellBack {
		metrics.InventoryFallbacks.Inc()
		logger.Info().Str("symbol_id", outcome.Winner.ID.String()).Msg("limited prize claimed concurrently, issuing losing chance")
	}

	if err := s.store.Batches().IncrementCounters(ctx, batch.ID, chance.Won()); err != nil {
		metrics.BatchCounterFailures.Inc()
		logger.Error().Err(err).
			Str("batch_id", batch.ID.String()).
			Str("chance_id", chance.ID.String()).
			Msg("batch counters not updated")
	}
	if s.catalog != nil {
		if err := s.catalog.Delete(ctx, CatalogCacheKey(card.ID)); err != nil {
			logger.Debug().Err(err).Msg("catalog cache not invalidated")
		}
	}

	s.publish(ctx, logger, chance)

	result := metrics.OutcomeLoss
	if chance.Won() {
		result = metrics.OutcomeWin
	}
	metrics.ChancesIssued.WithLabelValues(result).Inc()
	span.SetAttributes(attribute.String("scratch.outcome", result))

	return chance, nil
}

// activeBatch returns the single active batch of a card, if it still has stock.
func (s *chanceService) activeBatch(ctx context.Context, logger zerolog.Logger, cardID uuid.UUID) (*model.ScratchCardBatch, error) {
	batches, err := s.store.Batches().FindActiveByCardID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("load active batch: %w", err)
	}
	if len(batches) != 1 {
		if len(batches) > 1 {
			logger.Warn().Int("active_batches", len(batches)).Msg("scratch card has more than one active batch")
		}
		return nil, apperrors.ErrNoActiveBatch
	}
	batch := batches[0]
	if batch.SoldOut() {
		return nil, apperrors.ErrBatchSoldOut
	}
	return &batch, nil
}

func (s *chanceService) newChance(logger zerolog.Logger, userID, cardID, batchID uuid.UUID, symbols []model.ScratchSymbol, winner *model.ScratchSymbol) *model.ScratchChance {
	chance := &model.ScratchChance{
		ID:            uuid.New(),
		ScratchCardID: cardID,
		BatchID:       batchID,
		UserID:        userID,
		Symbols:       datatypes.JSONSlice[model.ScratchSymbolResult](s.buildGrid(logger, symbols, winner)),
		IsRevealed:    false,
		CreatedAt:     time.Now().UTC(),
	}
	if winner != nil {
		id := winner.ID
		chance.WinningSymbolID = &id
		chance.PrizeWon = decimal.NewNullDecimal(winner.PrizeValue)
	}
	return chance
}

func (s *chanceService) buildGrid(logger zerolog.Logger, symbols []model.ScratchSymbol, winner *model.ScratchSymbol) scratch.Grid {
	var (
		grid   scratch.Grid
		except uuid.UUID
	)
	if winner == nil {
		grid = scratch.NewLosingGrid(symbols, s.rng)
	} else {
		except = winner.ID
		if len(symbols) == 1 {
			metrics.GridWarnings.WithLabelValues(metrics.GridSingleSymbol).Inc()
			logger.Warn().Msg("scratch card has a single symbol, winning grid is padded with blank cells")
		}
		grid = scratch.NewWinningGrid(*winner, symbols, s.rng)
	}

	if triples := grid.Triples(except); len(triples) > 0 {
		metrics.GridWarnings.WithLabelValues(metrics.GridAccidentalTriple).Inc()
		logger.Warn().
			Int("symbols", len(symbols)).
			Int("extra_triples", len(triples)).
			Bool("won", winner != nil).
			Msg("symbol catalog too small to avoid an extra triple")
	}
	return grid
}

func (s *chanceService) publish(ctx context.Context, logger zerolog.Logger, chance *model.ScratchChance) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.PublishChanceIssued(ctx, events.ChanceIssued{
		ChanceID:        chance.ID,
		UserID:          chance.UserID,
		ScratchCardID:   chance.ScratchCardID,
		BatchID:         chance.BatchID,
		Won:             chance.Won(),
		PrizeWon:        chance.PrizeWon,
		WinningSymbolID: chance.WinningSymbolID,
		IssuedAt:        chance.CreatedAt,
	})
	if err != nil {
		logger.Warn().Err(err).Str("chance_id", chance.ID.String()).Msg("chance event not published")
	}
}

// RevealChance marks a chance as revealed.
func (s *chanceService) RevealChance(ctx context.Context, userID, chanceID uuid.UUID) (*model.ScratchChance, error) {
	chance, err := s.store.Chances().FindByIDForUser(ctx, chanceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChanceNotFound
		}
		return nil, fmt.Errorf("load chance: %w", err)
	}
	if chance.IsRevealed {
		return chance, nil
	}

	now := time.Now().UTC()
	if err := s.store.Chances().MarkRevealed(ctx, chance.ID, userID, now); err != nil {
		return nil, fmt.Errorf("reveal chance: %w", err)
	}
	chance.IsRevealed = true
	chance.RevealedAt = &now
	return chance, nil
}

// ListChances lists a user's chances, newest first. The page is bounded by PageBounds.
func (s *chanceService) ListChances(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.ScratchChance, error) {
	limit, offset = PageBounds(limit, offset)
	chances, err := s.store.Chances().ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chances: %w", err)
	}
	return chances, nil
}

// PageBounds returns the page ListChances actually serves for the requested one.
func PageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return min(limit, maxPageLimit), max(offset, 0)
}

// fail records an unexpected error on the span and returns it.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
