package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"raspadinha/internal/metrics"
	"raspadinha/internal/repository"
)

const defaultAuditConcurrency = 4

// BatchDrift compares a batch's stored counters with its chance ledger.
type BatchDrift struct {
	BatchID                 uuid.UUID `json:"batch_id"`
	ScratchCardID           uuid.UUID `json:"scratch_card_id"`
	RecordedCardsSold       int       `json:"recorded_cards_sold"`
	ActualCardsSold         int       `json:"actual_cards_sold"`
	RecordedPrizesDelivered int       `json:"recorded_prizes_distributed"`
	ActualPrizesDelivered   int       `json:"actual_prizes_distributed"`
	Corrected               bool      `json:"corrected"`
}

// Drifted reports whether the counters disagree with the ledger.
func (d BatchDrift) Drifted() bool {
	return d.RecordedCardsSold != d.ActualCardsSold || d.RecordedPrizesDelivered != d.ActualPrizesDelivered
}

// AuditService repairs batch counters from the chances recorded against them.
type AuditService interface {
	// ReconcileBatches returns every batch whose counters drifted. Unless
	// dryRun is set, the counters are rewritten from the ledger.
	ReconcileBatches(ctx context.Context, dryRun bool) ([]BatchDrift, error)
}

type auditService struct {
	store       repository.Store
	concurrency int
}

// NewAuditService creates a new audit service.
func NewAuditService(store repository.Store, concurrency int) AuditService {
	if concurrency <= 0 {
		concurrency = defaultAuditConcurrency
	}
	return &auditService{store: store, concurrency: concurrency}
}

// ReconcileBatches checks all batches concurrently. Chances sold while a
// batch is being rewritten are picked up by the next run.
func (s *auditService) ReconcileBatches(ctx context.Context, dryRun bool) ([]BatchDrift, error) {
	batches, err := s.store.Batches().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	results := make([]BatchDrift, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			sold, won, err := s.store.Chances().CountByBatch(gctx, batch.ID)
			if err != nil {
				return fmt.Errorf("count chances for batch %s: %w", batch.ID, err)
			}

			drift := BatchDrift{
				BatchID:                 batch.ID,
				ScratchCardID:           batch.ScratchCardID,
				RecordedCardsSold:       batch.CardsSold,
				ActualCardsSold:         int(sold),
				RecordedPrizesDelivered: batch.PrizesDistributed,
				ActualPrizesDelivered:   int(won),
			}
			if drift.Drifted() {
				metrics.BatchDrift.Inc()
				logger.Warn().
					Str("batch_id", batch.ID.String()).
					Int("recorded_sold", drift.RecordedCardsSold).
					Int("actual_sold", drift.ActualCardsSold).
					Int("recorded_prizes", drift.RecordedPrizesDelivered).
					Int("actual_prizes", drift.ActualPrizesDelivered).
					Msg("batch counters drifted")

				if !dryRun {
					if err := s.store.Batches().SetCounters(gctx, batch.ID, drift.ActualCardsSold, drift.ActualPrizesDelivered); err != nil {
						return fmt.Errorf("correct batch %s: %w", batch.ID, err)
					}
					drift.Corrected = true
				}
			}
			results[i] = drift
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return lo.Filter(results, func(d BatchDrift, _ int) bool { return d.Drifted() }), nil
}
