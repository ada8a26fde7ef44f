// Package events publishes domain events for downstream consumers
// such as the notification center.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChanceIssuedType names the event emitted after a chance is persisted.
const ChanceIssuedType = "scratch.chance.issued"

// ChanceIssued describes a freshly sold scratch chance.
type ChanceIssued struct {
	ChanceID        uuid.UUID           `json:"chance_id"`
	UserID          uuid.UUID           `json:"user_id"`
	ScratchCardID   uuid.UUID           `json:"scratch_card_id"`
	BatchID         uuid.UUID           `json:"batch_id"`
	Won             bool                `json:"won"`
	PrizeWon        decimal.NullDecimal `json:"prize_won"`
	WinningSymbolID *uuid.UUID          `json:"winning_symbol_id"`
	IssuedAt        time.Time           `json:"issued_at"`
}

// Publisher delivers domain events.
type Publisher interface {
	PublishChanceIssued(ctx context.Context, evt ChanceIssued) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// PublishChanceIssued does nothing.
func (NopPublisher) PublishChanceIssued(context.Context, ChanceIssued) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }

// New returns a Kafka publisher, or a NopPublisher when no brokers are configured.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
