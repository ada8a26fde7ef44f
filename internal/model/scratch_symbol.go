package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScratchSymbol is one prize tier of a scratch card.
//
// Probability is normally a fraction in [0,1]; legacy rows hold a percentage.
// A nil RemainingQuantity means the prize is unlimited.
type ScratchSymbol struct {
	ID                uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	ScratchCardID     uuid.UUID       `json:"scratch_card_id" gorm:"type:char(36);not null;index"`
	Name              string          `json:"name" gorm:"size:255;not null"`
	ImageURL          string          `json:"image_url" gorm:"size:512"`
	PrizeValue        decimal.Decimal `json:"prize_value" gorm:"type:decimal(20,2);not null;default:0"`
	Probability       float64         `json:"probability" gorm:"not null;default:0"`
	TotalQuantity     *int            `json:"total_quantity"`
	RemainingQuantity *int            `json:"remaining_quantity"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName pins the table name shared with the hosted database.
func (ScratchSymbol) TableName() string {
	return "scratch_symbols"
}

// BeforeCreate sets UUID before creating the record.
func (s *ScratchSymbol) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Limited reports whether the symbol has a finite prize stock.
func (s *ScratchSymbol) Limited() bool {
	return s.RemainingQuantity != nil
}

// InStock reports whether the symbol can still be awarded.
func (s *ScratchSymbol) InStock() bool {
	return s.RemainingQuantity == nil || *s.RemainingQuantity > 0
}
