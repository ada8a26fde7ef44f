package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "raspadinha/internal/errors"
	"raspadinha/internal/model"
)

func TestCatalogService_GetScratchCard(t *testing.T) {
	ctx := context.Background()
	prize := newSymbol("diamante", 0.01, 500, qty(2))
	f := newFixture(t, append([]model.ScratchSymbol{prize}, fillers(2)...)...)
	f.batch.CardsSold = 400
	require.NoError(t, f.store.Batches().Update(ctx, &f.batch))

	svc := NewCatalogService(f.store, nil, time.Minute)

	view, err := svc.GetScratchCard(ctx, f.card.ID)

	require.NoError(t, err)
	assert.Equal(t, f.card.ID, view.ID)
	assert.Equal(t, "Raspadinha de Ouro", view.Title)
	assert.True(t, view.IsActive)
	require.Len(t, view.Symbols, 3)
	assert.Equal(t, prize.ID, view.Symbols[0].ID)
	require.NotNil(t, view.RemainingCards)
	assert.Equal(t, 600, *view.RemainingCards)

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "probability")
	assert.NotContains(t, string(body), "remaining_quantity")
}

func TestCatalogService_GetScratchCard_NoSingleActiveBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fillers(1)...)
	f.batch.IsActive = false
	require.NoError(t, f.store.Batches().Update(ctx, &f.batch))

	view, err := NewCatalogService(f.store, nil, time.Minute).GetScratchCard(ctx, f.card.ID)

	require.NoError(t, err)
	assert.Nil(t, view.RemainingCards)
}

func TestCatalogService_GetScratchCard_NotFound(t *testing.T) {
	f := newFixture(t)

	view, err := NewCatalogService(f.store, nil, time.Minute).GetScratchCard(context.Background(), uuid.New())

	assert.Nil(t, view)
	assert.ErrorIs(t, err, apperrors.ErrScratchCardNotFound)
}
