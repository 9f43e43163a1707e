package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWalletCache_NilIsDisabled(t *testing.T) {
	var cache *WalletCache
	walletID := uuid.New()
	ctx := context.Background()

	_, ok := cache.GetBalance(ctx, walletID)
	assert.False(t, ok)

	_, ok = cache.GetHistory(ctx, walletID, 1, 10)
	assert.False(t, ok)

	// Writers and invalidation must be safe no-ops on a nil cache.
	cache.SetBalance(ctx, walletID, dec("10.00"))
	cache.SetHistory(ctx, walletID, 1, 10, nil)
	cache.Invalidate(ctx, walletID)
}

func TestNewWalletCache_NilClient(t *testing.T) {
	assert.Nil(t, NewWalletCache(nil, 0))
}
