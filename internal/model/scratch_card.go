package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices and prize values travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ScratchCard is a sellable instant-win product.
type ScratchCard struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"size:512"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null;default:0"`
	IsActive    bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Symbols []ScratchSymbol    `json:"symbols,omitempty" gorm:"foreignKey:ScratchCardID"`
	Batches []ScratchCardBatch `json:"-" gorm:"foreignKey:ScratchCardID"`
}

// TableName pins the table name shared with the hosted database.
func (ScratchCard) TableName() string {
	return "scratch_cards"
}

// BeforeCreate sets UUID before creating the record.
func (c *ScratchCard) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
