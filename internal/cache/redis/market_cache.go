package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexusbet/marketfeed/internal/domain"
)

const marketTTL = 5 * time.Minute

// MarketCache implements domain.MarketCache using JSON-serialized values
// with a short TTL. The upstream APIs refresh on roughly the same cadence,
// so stale reads are bounded by the TTL.
//
// Key schema:
//
//	markets:top:{limit}        - JSON array of NormalizedMarket
//	markets:tag:{tag}:{limit}  - JSON array of NormalizedMarket
//	market:{id}                - JSON NormalizedMarketDetail
type MarketCache struct {
	rdb *redis.Client
}

// NewMarketCache creates a MarketCache backed by the given Client.
func NewMarketCache(c *Client) *MarketCache {
	return &MarketCache{rdb: c.Underlying()}
}

func topKey(limit int) string { return "markets:top:" + strconv.Itoa(limit) }
func tagKey(tag string, limit int) string {
	return "markets:tag:" + tag + ":" + strconv.Itoa(limit)
}
func detailKey(id string) string { return "market:" + id }

// SetTop caches the top market list for the given limit.
func (mc *MarketCache) SetTop(ctx context.Context, limit int, markets []domain.NormalizedMarket) error {
	return mc.setJSON(ctx, topKey(limit), markets)
}

// GetTop retrieves the cached top market list for the given limit.
// It returns domain.ErrNotFound on a cache miss.
func (mc *MarketCache) GetTop(ctx context.Context, limit int) ([]domain.NormalizedMarket, error) {
	var markets []domain.NormalizedMarket
	if err := mc.getJSON(ctx, topKey(limit), &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// SetByTag caches a tag-filtered market list.
func (mc *MarketCache) SetByTag(ctx context.Context, tag string, limit int, markets []domain.NormalizedMarket) error {
	return mc.setJSON(ctx, tagKey(tag, limit), markets)
}

// GetByTag retrieves a cached tag-filtered market list.
// It returns domain.ErrNotFound on a cache miss.
func (mc *MarketCache) GetByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error) {
	var markets []domain.NormalizedMarket
	if err := mc.getJSON(ctx, tagKey(tag, limit), &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// SetDetail caches a single market detail keyed by market ID.
func (mc *MarketCache) SetDetail(ctx context.Context, detail domain.NormalizedMarketDetail) error {
	return mc.setJSON(ctx, detailKey(detail.ID), detail)
}

// GetDetail retrieves a cached market detail by ID.
// It returns domain.ErrNotFound on a cache miss.
func (mc *MarketCache) GetDetail(ctx context.Context, id string) (domain.NormalizedMarketDetail, error) {
	var detail domain.NormalizedMarketDetail
	if err := mc.getJSON(ctx, detailKey(id), &detail); err != nil {
		return domain.NormalizedMarketDetail{}, err
	}
	return detail, nil
}

func (mc *MarketCache) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis: marshal %s: %w", key, err)
	}
	if err := mc.rdb.Set(ctx, key, data, marketTTL).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (mc *MarketCache) getJSON(ctx context.Context, key string, out any) error {
	data, err := mc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("redis: get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("redis: unmarshal %s: %w", key, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.MarketCache = (*MarketCache)(nil)
