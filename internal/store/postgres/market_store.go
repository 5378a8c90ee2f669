package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// MarketStore implements domain.MarketStore using PostgreSQL.
type MarketStore struct {
	pool *pgxpool.Pool
}

// NewMarketStore creates a new MarketStore backed by the given connection pool.
func NewMarketStore(pool *pgxpool.Pool) *MarketStore {
	return &MarketStore{pool: pool}
}

// InsertIfAbsent inserts the record unless a row with the same source_id
// already exists. The conflict clause makes the dedupe atomic, so two
// overlapping job runs cannot double-insert the same market.
func (s *MarketStore) InsertIfAbsent(ctx context.Context, rec domain.MarketRecord) (bool, error) {
	const query = `
		INSERT INTO markets (
			source_id, source, title, description, category, event_type,
			start_time, end_time, image, tags, yes_odds, no_odds,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, NOW(), NOW()
		)
		ON CONFLICT (source_id) DO NOTHING`

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}

	// Zero start time maps to NULL; not every source reports a kickoff.
	var startTime *time.Time
	if !rec.StartTime.IsZero() {
		startTime = &rec.StartTime
	}

	tag, err := s.pool.Exec(ctx, query,
		rec.SourceID, string(rec.Source), rec.Title, rec.Description,
		rec.Category, rec.EventType,
		startTime, rec.EndTime, rec.Image, tags,
		rec.YesOdds, rec.NoOdds, string(rec.Status),
	)
	if err != nil {
		return false, fmt.Errorf("postgres: insert market %s: %w", rec.SourceID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExistsBySourceID reports whether a market row with the given source ID is
// already persisted.
func (s *MarketStore) ExistsBySourceID(ctx context.Context, sourceID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM markets WHERE source_id = $1)`, sourceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres: exists market %s: %w", sourceID, err)
	}
	return exists, nil
}

const marketCols = `id, source_id, source, title, description, category, event_type,
	start_time, end_time, image, tags, yes_odds, no_odds,
	status, outcome, created_at, updated_at`

// scanMarket scans a single market row into a domain.MarketRecord.
func scanMarket(row pgx.Row) (domain.MarketRecord, error) {
	var (
		rec       domain.MarketRecord
		source    string
		status    string
		outcome   *string
		startTime *time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.SourceID, &source, &rec.Title, &rec.Description,
		&rec.Category, &rec.EventType,
		&startTime, &rec.EndTime, &rec.Image, &rec.Tags,
		&rec.YesOdds, &rec.NoOdds,
		&status, &outcome, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return domain.MarketRecord{}, err
	}
	rec.Source = domain.Source(source)
	rec.Status = domain.MarketStatus(status)
	if outcome != nil {
		o := domain.Outcome(*outcome)
		rec.Outcome = &o
	}
	if startTime != nil {
		rec.StartTime = *startTime
	}
	return rec, nil
}

// GetBySourceID retrieves a market by its upstream source ID.
func (s *MarketStore) GetBySourceID(ctx context.Context, sourceID string) (domain.MarketRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+marketCols+` FROM markets WHERE source_id = $1`, sourceID)

	rec, err := scanMarket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MarketRecord{}, domain.ErrNotFound
		}
		return domain.MarketRecord{}, fmt.Errorf("postgres: get market %s: %w", sourceID, err)
	}
	return rec, nil
}

// ListBySource returns markets from one upstream source, newest first.
func (s *MarketStore) ListBySource(ctx context.Context, source domain.Source, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+marketCols+` FROM markets
		 WHERE source = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		string(source), listLimit(opts), opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list markets by source %s: %w", source, err)
	}
	defer rows.Close()

	return collectMarkets(rows)
}

// ListOpen returns open markets ordered by soonest end time.
func (s *MarketStore) ListOpen(ctx context.Context, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+marketCols+` FROM markets
		 WHERE status = 'OPEN'
		 ORDER BY end_time ASC
		 LIMIT $1 OFFSET $2`,
		listLimit(opts), opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: list open markets: %w", err)
	}
	defer rows.Close()

	return collectMarkets(rows)
}

// Count returns the total number of persisted markets.
func (s *MarketStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM markets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: count markets: %w", err)
	}
	return count, nil
}

func collectMarkets(rows pgx.Rows) ([]domain.MarketRecord, error) {
	var out []domain.MarketRecord
	for rows.Next() {
		rec, err := scanMarket(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan market row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate market rows: %w", err)
	}
	return out, nil
}

func listLimit(opts domain.ListOpts) int {
	if opts.Limit <= 0 {
		return 50
	}
	return opts.Limit
}
