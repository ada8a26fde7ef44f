package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScratchCardBatch is a finite inventory lot of one scratch card.
// Chances may only be issued while CardsSold < TotalCards.
type ScratchCardBatch struct {
	ID                uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ScratchCardID     uuid.UUID `json:"scratch_card_id" gorm:"type:char(36);not null;index"`
	Name              string    `json:"name,omitempty" gorm:"size:255"`
	TotalCards        int       `json:"total_cards" gorm:"not null"`
	CardsSold         int       `json:"cards_sold" gorm:"not null;default:0"`
	TotalPrizes       int       `json:"total_prizes" gorm:"not null;default:0"`
	PrizesDistributed int       `json:"prizes_distributed" gorm:"not null;default:0"`
	IsActive          bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName pins the table name shared with the hosted database.
func (ScratchCardBatch) TableName() string {
	return "scratch_card_batches"
}

// BeforeCreate sets UUID before creating the record.
func (b *ScratchCardBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// SoldOut reports whether the batch has no cards left to sell.
func (b *ScratchCardBatch) SoldOut() bool {
	return b.CardsSold >= b.TotalCards
}

// Remaining returns how many cards are still for sale.
func (b *ScratchCardBatch) Remaining() int {
	if b.SoldOut() {
		return 0
	}
	return b.TotalCards - b.CardsSold
}
