package scratch

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"raspadinha/internal/model"
)

const (
	// MatchCount is how many cells of one symbol make a win.
	MatchCount = 3
	// maxCopies is the most a non-winning symbol may appear.
	maxCopies  = MatchCount - 1
	maxRerolls = 50
)

// Grid is the 3x3 layout of a purchased card, in position order.
type Grid []model.ScratchSymbolResult

// Counts returns how many cells each symbol occupies.
func (g Grid) Counts() map[uuid.UUID]int {
	return lo.CountValuesBy(g, func(c model.ScratchSymbolResult) uuid.UUID {
		return c.SymbolID
	})
}

// Triples returns the symbols, other than except, that occupy MatchCount or more cells.
// Blank cells are not symbols and are never reported.
func (g Grid) Triples(except uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for id, n := range g.Counts() {
		if id != except && id != uuid.Nil && n >= MatchCount {
			out = append(out, id)
		}
	}
	return out
}

// Blanks returns how many cells carry no symbol.
func (g Grid) Blanks() int {
	return g.Counts()[uuid.Nil]
}

// NewWinningGrid places winner on exactly MatchCount cells and fills the rest
// from the other symbols, each capped below MatchCount while the catalog allows.
// A catalog holding only the winner leaves the remaining cells blank.
func NewWinningGrid(winner model.ScratchSymbol, symbols []model.ScratchSymbol, rng RandomSource) Grid {
	cells := make([]model.ScratchSymbol, 0, model.GridSize)
	for i := 0; i < MatchCount; i++ {
		cells = append(cells, winner)
	}

	others := lo.Filter(symbols, func(s model.ScratchSymbol, _ int) bool {
		return s.ID != winner.ID
	})
	if len(others) == 0 {
		for len(cells) < model.GridSize {
			cells = append(cells, model.ScratchSymbol{})
		}
		return layout(cells, rng)
	}

	return layout(fill(cells, others, rng), rng)
}

// NewLosingGrid lays out nine cells in which no symbol reaches MatchCount
// while the catalog has enough symbols (five or more) to allow it.
func NewLosingGrid(symbols []model.ScratchSymbol, rng RandomSource) Grid {
	if len(symbols) == 0 {
		return nil
	}
	cells := make([]model.ScratchSymbol, 0, model.GridSize)
	return layout(fill(cells, symbols, rng), rng)
}

// fill tops cells up to GridSize by dealing from a shuffled pool holding each
// catalog symbol twice.
func fill(cells, catalog []model.ScratchSymbol, rng RandomSource) []model.ScratchSymbol {
	counts := lo.CountValuesBy(cells, func(s model.ScratchSymbol) uuid.UUID { return s.ID })
	d := &deck{catalog: catalog, rng: rng}

	for len(cells) < model.GridSize {
		pick := d.drawCell(counts)
		counts[pick.ID]++
		cells = append(cells, pick)
	}
	return cells
}

// deck deals a shuffled pool without replacement. An exhausted pool is
// reshuffled, which only happens for catalogs too small to fill a grid.
type deck struct {
	catalog []model.ScratchSymbol
	pool    []model.ScratchSymbol
	next    int
	rng     RandomSource
}

func (d *deck) deal() model.ScratchSymbol {
	if d.next >= len(d.pool) {
		d.pool = make([]model.ScratchSymbol, 0, len(d.catalog)*maxCopies)
		for _, s := range d.catalog {
			for i := 0; i < maxCopies; i++ {
				d.pool = append(d.pool, s)
			}
		}
		shuffle(d.pool, d.rng)
		d.next = 0
	}
	s := d.pool[d.next]
	d.next++
	return s
}

// drawCell deals the next entry, re-rolling by dealing again while the entry
// would reach MatchCount. After maxRerolls the last entry is accepted.
func (d *deck) drawCell(counts map[uuid.UUID]int) model.ScratchSymbol {
	var pick model.ScratchSymbol
	for attempt := 0; attempt < maxRerolls; attempt++ {
		pick = d.deal()
		if counts[pick.ID] < maxCopies {
			return pick
		}
	}
	return pick
}

// layout shuffles the cells and numbers them 0..8 in their new order.
func layout(cells []model.ScratchSymbol, rng RandomSource) Grid {
	shuffle(cells, rng)
	return lo.Map(cells, func(s model.ScratchSymbol, i int) model.ScratchSymbolResult {
		return model.ScratchSymbolResult{
			Position: i,
			SymbolID: s.ID,
			ImageURL: s.ImageURL,
			Name:     s.Name,
		}
	})
}
