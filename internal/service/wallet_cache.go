package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"api_ledger/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// WalletCache is a read-through Redis cache for balance and history lookups.
// The ledger never writes through it; every mutation deletes the wallet's
// keys, so the database stays the sole source of truth. A nil *WalletCache
// is valid and disables caching.
type WalletCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewWalletCache(rdb *redis.Client, ttl time.Duration) *WalletCache {
	if rdb == nil {
		return nil
	}
	return &WalletCache{rdb: rdb, ttl: ttl}
}

func balanceKey(walletID uuid.UUID) string {
	return "wallet:balance:" + walletID.String()
}

func historyKey(walletID uuid.UUID, page, limit int) string {
	return fmt.Sprintf("wallet:history:%s:%d:%d", walletID, page, limit)
}

func (c *WalletCache) GetBalance(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, bool) {
	if c == nil {
		return decimal.Zero, false
	}
	val, err := c.rdb.Get(ctx, balanceKey(walletID)).Result()
	if err != nil {
		return decimal.Zero, false
	}
	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return balance, true
}

func (c *WalletCache) SetBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, balanceKey(walletID), balance.String(), c.ttl)
}

func (c *WalletCache) GetHistory(ctx context.Context, walletID uuid.UUID, page, limit int) (*models.HistoryPage, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, historyKey(walletID, page, limit)).Result()
	if err != nil {
		return nil, false
	}
	var history models.HistoryPage
	if err := json.Unmarshal([]byte(val), &history); err != nil {
		return nil, false
	}
	return &history, true
}

func (c *WalletCache) SetHistory(ctx context.Context, walletID uuid.UUID, page, limit int, history *models.HistoryPage) {
	if c == nil {
		return
	}
	b, err := json.Marshal(history)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, historyKey(walletID, page, limit), b, c.ttl)
}

// Invalidate drops the balance key and every cached history page for the
// wallet. Best effort: a failed delete only shortens to the TTL.
func (c *WalletCache) Invalidate(ctx context.Context, walletID uuid.UUID) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, balanceKey(walletID))

	pattern := "wallet:history:" + walletID.String() + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
