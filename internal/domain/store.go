package domain

import (
	"context"
	"io"
	"time"
)

// ListOpts provides pagination for list queries.
type ListOpts struct {
	Limit  int
	Offset int
}

// MarketStore persists normalized market rows keyed by source ID.
type MarketStore interface {
	// InsertIfAbsent inserts the record unless a row with the same source ID
	// already exists. It reports whether a row was created.
	InsertIfAbsent(ctx context.Context, rec MarketRecord) (bool, error)
	ExistsBySourceID(ctx context.Context, sourceID string) (bool, error)
	GetBySourceID(ctx context.Context, sourceID string) (MarketRecord, error)
	ListBySource(ctx context.Context, source Source, opts ListOpts) ([]MarketRecord, error)
	ListOpen(ctx context.Context, opts ListOpts) ([]MarketRecord, error)
	Count(ctx context.Context) (int64, error)
}

// MarketCache is a read-through cache for normalized markets served by the
// API layer. Implementations return ErrNotFound on cache misses.
type MarketCache interface {
	SetTop(ctx context.Context, limit int, markets []NormalizedMarket) error
	GetTop(ctx context.Context, limit int) ([]NormalizedMarket, error)
	SetByTag(ctx context.Context, tag string, limit int, markets []NormalizedMarket) error
	GetByTag(ctx context.Context, tag string, limit int) ([]NormalizedMarket, error)
	SetDetail(ctx context.Context, detail NormalizedMarketDetail) error
	GetDetail(ctx context.Context, id string) (NormalizedMarketDetail, error)
}

// BlobWriter stores an object at the given path in blob storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}

// SnapshotArchiver archives a raw upstream payload for later replay.
type SnapshotArchiver interface {
	Archive(ctx context.Context, source Source, fetchedAt time.Time, payload any) error
}

// MarketPublisher pushes newly created markets to connected listeners.
type MarketPublisher interface {
	PublishCreated(rec MarketRecord)
}
