package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"raspadinha/internal/model"
	"raspadinha/internal/repository"
)

// memStore is an in-memory repository.Store. Each method holds the lock for
// its whole body, so DecrementRemaining behaves like the conditional UPDATE.
type memStore struct {
	mu sync.Mutex

	cards       map[uuid.UUID]model.ScratchCard
	batches     map[uuid.UUID]model.ScratchCardBatch
	batchOrder  []uuid.UUID
	symbols     map[uuid.UUID]model.ScratchSymbol
	symbolOrder []uuid.UUID
	chances     []model.ScratchChance

	errCreateChance error
	errIncrement    error
	errCount        error
}

func newMemStore() *memStore {
	return &memStore{
		cards:   map[uuid.UUID]model.ScratchCard{},
		batches: map[uuid.UUID]model.ScratchCardBatch{},
		symbols: map[uuid.UUID]model.ScratchSymbol{},
	}
}

func (s *memStore) Cards() repository.ScratchCardRepository     { return memCards{s} }
func (s *memStore) Batches() repository.ScratchBatchRepository  { return memBatches{s} }
func (s *memStore) Symbols() repository.ScratchSymbolRepository { return memSymbols{s} }
func (s *memStore) Chances() repository.ScratchChanceRepository { return memChances{s} }

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, store repository.Store) error) error {
	return fn(ctx, s)
}

func (s *memStore) symbol(id uuid.UUID) model.ScratchSymbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSymbol(s.symbols[id])
}

func (s *memStore) batch(id uuid.UUID) model.ScratchCardBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches[id]
}

func (s *memStore) allChances() []model.ScratchChance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.chances)
}

func cloneSymbol(sym model.ScratchSymbol) model.ScratchSymbol {
	if sym.RemainingQuantity != nil {
		v := *sym.RemainingQuantity
		sym.RemainingQuantity = &v
	}
	if sym.TotalQuantity != nil {
		v := *sym.TotalQuantity
		sym.TotalQuantity = &v
	}
	return sym
}

type memCards struct{ s *memStore }

func (r memCards) Create(_ context.Context, card *model.ScratchCard) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	stored := *card
	stored.Symbols = nil
	stored.Batches = nil
	r.s.cards[card.ID] = stored
	return nil
}

func (r memCards) Update(ctx context.Context, card *model.ScratchCard) error {
	return r.Create(ctx, card)
}

func (r memCards) FindByID(_ context.Context, id uuid.UUID) (*model.ScratchCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	card, ok := r.s.cards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &card, nil
}

func (r memCards) FindByIDWithSymbols(ctx context.Context, id uuid.UUID) (*model.ScratchCard, error) {
	card, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Symbols, _ = memSymbols(r).ListByCardID(ctx, id)
	return card, nil
}

type memBatches struct{ s *memStore }

func (r memBatches) Create(_ context.Context, batch *model.ScratchCardBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	if _, ok := r.s.batches[batch.ID]; !ok {
		r.s.batchOrder = append(r.s.batchOrder, batch.ID)
	}
	r.s.batches[batch.ID] = *batch
	return nil
}

func (r memBatches) Update(ctx context.Context, batch *model.ScratchCardBatch) error {
	return r.Create(ctx, batch)
}

func (r memBatches) FindActiveByCardID(_ context.Context, cardID uuid.UUID) ([]model.ScratchCardBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ScratchCardBatch
	for _, id := range r.s.batchOrder {
		if b := r.s.batches[id]; b.ScratchCardID == cardID && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r memBatches) ListAll(_ context.Context) ([]model.ScratchCardBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.ScratchCardBatch, 0, len(r.s.batchOrder))
	for _, id := range r.s.batchOrder {
		out = append(out, r.s.batches[id])
	}
	return out, nil
}

func (r memBatches) IncrementCounters(_ context.Context, id uuid.UUID, won bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errIncrement != nil {
		return r.s.errIncrement
	}
	b, ok := r.s.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.CardsSold++
	if won {
		b.PrizesDistributed++
	}
	r.s.batches[id] = b
	return nil
}

func (r memBatches) SetCounters(_ context.Context, id uuid.UUID, cardsSold, prizesDistributed int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.CardsSold = cardsSold
	b.PrizesDistributed = prizesDistributed
	r.s.batches[id] = b
	return nil
}

type memSymbols struct{ s *memStore }

func (r memSymbols) Create(_ context.Context, sym *model.ScratchSymbol) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sym.ID == uuid.Nil {
		sym.ID = uuid.New()
	}
	if _, ok := r.s.symbols[sym.ID]; !ok {
		r.s.symbolOrder = append(r.s.symbolOrder, sym.ID)
	}
	r.s.symbols[sym.ID] = cloneSymbol(*sym)
	return nil
}

func (r memSymbols) Update(ctx context.Context, sym *model.ScratchSymbol) error {
	return r.Create(ctx, sym)
}

func (r memSymbols) ListByCardID(_ context.Context, cardID uuid.UUID) ([]model.ScratchSymbol, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.ScratchSymbol
	for _, id := range r.s.symbolOrder {
		if sym := r.s.symbols[id]; sym.ScratchCardID == cardID {
			out = append(out, cloneSymbol(sym))
		}
	}
	return out, nil
}

func (r memSymbols) DecrementRemaining(_ context.Context, id uuid.UUID, expected int) (bool, error) {
	if expected <= 0 {
		return false, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sym, ok := r.s.symbols[id]
	if !ok || sym.RemainingQuantity == nil || *sym.RemainingQuantity != expected {
		return false, nil
	}
	left := expected - 1
	sym.RemainingQuantity = &left
	r.s.symbols[id] = sym
	return true, nil
}

type memChances struct{ s *memStore }

func (r memChances) Create(_ context.Context, chance *model.ScratchChance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errCreateChance != nil {
		return r.s.errCreateChance
	}
	r.s.chances = append(r.s.chances, *chance)
	return nil
}

func (r memChances) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*model.ScratchChance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.chances {
		if c.ID == id && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memChances) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.ScratchChance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var mine []model.ScratchChance
	for i := len(r.s.chances) - 1; i >= 0; i-- {
		if r.s.chances[i].UserID == userID {
			mine = append(mine, r.s.chances[i])
		}
	}
	if offset >= len(mine) {
		return []model.ScratchChance{}, nil
	}
	mine = mine[offset:]
	if len(mine) > limit {
		mine = mine[:limit]
	}
	return mine, nil
}

func (r memChances) MarkRevealed(_ context.Context, id, userID uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.chances {
		if c.ID == id && c.UserID == userID && !c.IsRevealed {
			r.s.chances[i].IsRevealed = true
			r.s.chances[i].RevealedAt = &at
		}
	}
	return nil
}

func (r memChances) CountByBatch(_ context.Context, batchID uuid.UUID) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.errCount != nil {
		return 0, 0, r.s.errCount
	}
	var sold, won int64
	for _, c := range r.s.chances {
		if c.BatchID != batchID {
			continue
		}
		sold++
		if c.Won() {
			won++
		}
	}
	return sold, won, nil
}

// staleReadStore serves symbol reads from a snapshot taken before a
// concurrent purchase. Writes inside transactions reach the live store.
type staleReadStore struct {
	*memStore
	stale model.ScratchSymbol
}

func (s *staleReadStore) Symbols() repository.ScratchSymbolRepository {
	return staleSymbols{memSymbols: memSymbols{s.memStore}, stale: s.stale}
}

type staleSymbols struct {
	memSymbols
	stale model.ScratchSymbol
}

func (r staleSymbols) ListByCardID(ctx context.Context, cardID uuid.UUID) ([]model.ScratchSymbol, error) {
	out, err := r.memSymbols.ListByCardID(ctx, cardID)
	for i := range out {
		if out[i].ID == r.stale.ID {
			out[i] = cloneSymbol(r.stale)
		}
	}
	return out, err
}
