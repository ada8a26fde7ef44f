// Package catalog loads scratch card catalogs from YAML files and writes
// them to the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"raspadinha/internal/model"
	"raspadinha/internal/repository"
)

// File is the root of a catalog document.
type File struct {
	Cards []Card `yaml:"cards" validate:"required,min=1,dive"`
}

// Card is one scratch card with its active batch and symbols.
type Card struct {
	ID          uuid.UUID       `yaml:"id" validate:"required"`
	Title       string          `yaml:"title" validate:"required"`
	Description string          `yaml:"description"`
	ImageURL    string          `yaml:"image_url" validate:"omitempty,url"`
	Price       decimal.Decimal `yaml:"price"`
	Active      *bool           `yaml:"active"`
	Batch       Batch           `yaml:"batch"`
	Symbols     []Symbol        `yaml:"symbols" validate:"required,min=1,dive"`
}

// Batch describes the print run sold for a card.
type Batch struct {
	ID          uuid.UUID `yaml:"id" validate:"required"`
	Name        string    `yaml:"name" validate:"required"`
	TotalCards  int       `yaml:"total_cards" validate:"gt=0"`
	TotalPrizes int       `yaml:"total_prizes" validate:"gte=0"`
}

// Symbol is a grid symbol. Quantity is omitted for unlimited prizes.
type Symbol struct {
	ID          uuid.UUID       `yaml:"id" validate:"required"`
	Name        string          `yaml:"name" validate:"required"`
	ImageURL    string          `yaml:"image_url" validate:"omitempty,url"`
	PrizeValue  decimal.Decimal `yaml:"prize_value"`
	Probability float64         `yaml:"probability" validate:"gte=0,lte=100"`
	Quantity    *int            `yaml:"quantity" validate:"omitempty,gte=0"`
}

// Summary counts what Apply wrote.
type Summary struct {
	Cards   int
	Batches int
	Symbols int
}

var validate = validator.New()

// Load reads and validates a catalog file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks field constraints and cross-references.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	ids := map[uuid.UUID]string{}
	claim := func(id uuid.UUID, what string) error {
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("invalid catalog: id %s used by %s and %s", id, prev, what)
		}
		ids[id] = what
		return nil
	}

	for _, c := range f.Cards {
		if !c.Price.IsPositive() {
			return fmt.Errorf("invalid catalog: card %q must have a positive price", c.Title)
		}
		if err := claim(c.ID, "card "+c.Title); err != nil {
			return err
		}
		if err := claim(c.Batch.ID, "batch "+c.Batch.Name); err != nil {
			return err
		}
		for _, s := range c.Symbols {
			if s.PrizeValue.IsNegative() {
				return fmt.Errorf("invalid catalog: symbol %q has a negative prize", s.Name)
			}
			if err := claim(s.ID, "symbol "+s.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Apply upserts every card, batch and symbol in one transaction. Sales
// counters of known batches are kept, and so is the stock of limited
// symbols whose total is unchanged.
func Apply(ctx context.Context, store repository.Store, f *File) (Summary, error) {
	var sum Summary
	err := store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		sum = Summary{}
		batches, err := tx.Batches().ListAll(ctx)
		if err != nil {
			return fmt.Errorf("load batches: %w", err)
		}
		knownBatches := lo.KeyBy(batches, func(b model.ScratchCardBatch) uuid.UUID { return b.ID })

		for _, c := range f.Cards {
			card := c.toModel()
			if prev, err := tx.Cards().FindByID(ctx, card.ID); err == nil {
				card.CreatedAt = prev.CreatedAt
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load card %q: %w", c.Title, err)
			}
			if err := tx.Cards().Update(ctx, card); err != nil {
				return fmt.Errorf("save card %q: %w", c.Title, err)
			}
			sum.Cards++

			batch := c.Batch.toModel(card.ID)
			if prev, ok := knownBatches[batch.ID]; ok {
				batch.CardsSold = prev.CardsSold
				batch.PrizesDistributed = prev.PrizesDistributed
				batch.CreatedAt = prev.CreatedAt
			}
			if err := tx.Batches().Update(ctx, batch); err != nil {
				return fmt.Errorf("save batch %q: %w", c.Batch.Name, err)
			}
			sum.Batches++

			existing, err := tx.Symbols().ListByCardID(ctx, card.ID)
			if err != nil {
				return fmt.Errorf("load symbols of %q: %w", c.Title, err)
			}
			current := lo.KeyBy(existing, func(s model.ScratchSymbol) uuid.UUID { return s.ID })

			for _, s := range c.Symbols {
				sym := s.toModel(card.ID)
				if prev, ok := current[sym.ID]; ok {
					sym.CreatedAt = prev.CreatedAt
					if keepsStock(&prev, sym) {
						sym.RemainingQuantity = prev.RemainingQuantity
					}
				}
				if err := tx.Symbols().Update(ctx, sym); err != nil {
					return fmt.Errorf("save symbol %q: %w", s.Name, err)
				}
				sum.Symbols++
			}
		}
		return nil
	})
	return sum, err
}

func keepsStock(prev, next *model.ScratchSymbol) bool {
	return prev.Limited() && next.Limited() && *prev.TotalQuantity == *next.TotalQuantity
}

func (c Card) toModel() *model.ScratchCard {
	active := true
	if c.Active != nil {
		active = *c.Active
	}
	return &model.ScratchCard{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Price:       c.Price,
		IsActive:    active,
	}
}

func (b Batch) toModel(cardID uuid.UUID) *model.ScratchCardBatch {
	return &model.ScratchCardBatch{
		ID:            b.ID,
		ScratchCardID: cardID,
		Name:          b.Name,
		TotalCards:    b.TotalCards,
		TotalPrizes:   b.TotalPrizes,
		IsActive:      true,
	}
}

func (s Symbol) toModel(cardID uuid.UUID) *model.ScratchSymbol {
	sym := &model.ScratchSymbol{
		ID:            s.ID,
		ScratchCardID: cardID,
		Name:          s.Name,
		ImageURL:      s.ImageURL,
		PrizeValue:    s.PrizeValue,
		Probability:   s.Probability,
	}
	if s.Quantity != nil {
		total, remaining := *s.Quantity, *s.Quantity
		sym.TotalQuantity = &total
		sym.RemainingQuantity = &remaining
	}
	return sym
}
