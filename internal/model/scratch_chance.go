package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GridSize is the number of cells on a scratch card (3x3).
const GridSize = 9

// ScratchSymbolResult is one cell of a purchased card.
type ScratchSymbolResult struct {
	Position int       `json:"position"`
	SymbolID uuid.UUID `json:"symbol_id"`
	ImageURL string    `json:"image_url"`
	Name     string    `json:"name"`
}

// ScratchChance is one purchased play. The outcome is fixed at creation;
// revealing only flips IsRevealed.
type ScratchChance struct {
	ID              uuid.UUID                                `json:"id" gorm:"type:char(36);primaryKey"`
	ScratchCardID   uuid.UUID                                `json:"scratch_card_id" gorm:"type:char(36);not null;index"`
	BatchID         uuid.UUID                                `json:"batch_id" gorm:"type:char(36);not null;index"`
	UserID          uuid.UUID                                `json:"user_id" gorm:"type:char(36);not null;index"`
	Symbols         datatypes.JSONSlice[ScratchSymbolResult] `json:"symbols" gorm:"not null"`
	IsRevealed      bool                                     `json:"is_revealed" gorm:"default:false"`
	RevealedAt      *time.Time                               `json:"revealed_at,omitempty"`
	PrizeWon        decimal.NullDecimal                      `json:"prize_won" gorm:"type:decimal(20,2)"`
	WinningSymbolID *uuid.UUID                               `json:"winning_symbol_id" gorm:"type:char(36);index"`
	CreatedAt       time.Time                                `json:"created_at" gorm:"index"`
}

// TableName pins the table name shared with the hosted database.
func (ScratchChance) TableName() string {
	return "scratch_chances"
}

// BeforeCreate sets UUID before creating the record.
func (c *ScratchChance) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Won reports whether the chance carries a prize.
func (c *ScratchChance) Won() bool {
	return c.WinningSymbolID != nil
}
