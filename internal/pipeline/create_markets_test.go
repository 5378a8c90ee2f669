package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

type fakePolymarket struct {
	markets []domain.NormalizedMarket
	err     error
}

func (f *fakePolymarket) FetchTopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error) {
	return f.markets, f.err
}

type fakeFootball struct {
	matches []domain.FootballMatch
	err     error
}

func (f *fakeFootball) FetchUpcoming(ctx context.Context, leagueID, daysAhead int) ([]domain.FootballMatch, error) {
	return f.matches, f.err
}

type fakeStore struct {
	existing  map[string]bool
	inserted  []domain.MarketRecord
	insertErr error
}

func (f *fakeStore) InsertIfAbsent(ctx context.Context, rec domain.MarketRecord) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	if f.existing[rec.SourceID] {
		return false, nil
	}
	f.inserted = append(f.inserted, rec)
	return true, nil
}

func (f *fakeStore) ExistsBySourceID(ctx context.Context, sourceID string) (bool, error) {
	return f.existing[sourceID], nil
}

func (f *fakeStore) GetBySourceID(ctx context.Context, sourceID string) (domain.MarketRecord, error) {
	return domain.MarketRecord{}, domain.ErrNotFound
}

func (f *fakeStore) ListBySource(ctx context.Context, source domain.Source, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	return nil, nil
}

func (f *fakeStore) ListOpen(ctx context.Context, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	return nil, nil
}

func (f *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.inserted)), nil
}

type fakeArchiver struct {
	sources []domain.Source
}

func (f *fakeArchiver) Archive(ctx context.Context, source domain.Source, fetchedAt time.Time, payload any) error {
	f.sources = append(f.sources, source)
	return nil
}

type fakePublisher struct {
	published []domain.MarketRecord
}

func (f *fakePublisher) PublishCreated(rec domain.MarketRecord) {
	f.published = append(f.published, rec)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMarket(id, title string) domain.NormalizedMarket {
	return domain.NormalizedMarket{
		ID:        id,
		Title:     title,
		Category:  "Politics",
		EventType: "politics",
		EndDate:   time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		YesOdds:   60,
		NoOdds:    40,
	}
}

func testFixture(id string, status domain.FixtureStatus, kickoff time.Time) domain.FootballMatch {
	return domain.FootballMatch{
		ID:        id,
		League:    "Premier League",
		HomeTeam:  domain.Team{Name: "Arsenal"},
		AwayTeam:  domain.Team{Name: "Chelsea"},
		StartTime: kickoff.UTC().Format(time.RFC3339),
		Status:    status,
		Venue:     domain.Venue{Name: "Emirates Stadium", City: "London"},
	}
}

func TestRunCreatesAndSkips(t *testing.T) {
	kickoff := time.Now().Add(24 * time.Hour)
	pm := &fakePolymarket{markets: []domain.NormalizedMarket{
		testMarket("pm-1", "Fed decision"),
		testMarket("pm-2", "Election winner"),
	}}
	fb := &fakeFootball{matches: []domain.FootballMatch{
		testFixture("apif-100", domain.FixtureScheduled, kickoff),
		testFixture("apif-200", domain.FixtureLive, kickoff),
	}}
	store := &fakeStore{existing: map[string]bool{"pm-2": true}}
	pub := &fakePublisher{}

	job := NewCreateMarketsJob(pm, fb, store, nil, pub, CreateMarketsConfig{LeagueID: 39, DaysAhead: 7}, discardLogger())

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// pm-1 and the scheduled fixture create; pm-2 exists; the live fixture
	// is not a candidate at all.
	if summary.Created != 2 {
		t.Errorf("Created = %d, want 2", summary.Created)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("inserted %d records, want 2", len(store.inserted))
	}

	for _, rec := range store.inserted {
		if rec.Status != domain.MarketStatusOpen {
			t.Errorf("record %s status = %s, want OPEN", rec.SourceID, rec.Status)
		}
	}

	football := store.inserted[1]
	if football.Source != domain.SourceAPIFootball {
		t.Errorf("second record source = %s, want api-football", football.Source)
	}
	wantEnd := kickoff.Add(3 * time.Hour)
	if d := football.EndTime.Sub(wantEnd); d > time.Second || d < -time.Second {
		t.Errorf("fixture end time = %v, want kickoff+3h (%v)", football.EndTime, wantEnd)
	}

	if len(pub.published) != 2 {
		t.Fatalf("published %d records, want 2", len(pub.published))
	}
	if pub.published[0].SourceID != "pm-1" {
		t.Errorf("first published = %s, want pm-1", pub.published[0].SourceID)
	}
}

func TestRunDryRunLeavesStoreUntouched(t *testing.T) {
	pm := &fakePolymarket{markets: []domain.NormalizedMarket{testMarket("pm-1", "Fed decision")}}
	fb := &fakeFootball{}
	store := &fakeStore{}
	pub := &fakePublisher{}

	job := NewCreateMarketsJob(pm, fb, store, nil, pub, CreateMarketsConfig{DryRun: true}, discardLogger())

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Created != 1 {
		t.Errorf("Created = %d, want 1", summary.Created)
	}
	if len(store.inserted) != 0 {
		t.Errorf("dry run inserted %d records", len(store.inserted))
	}
	if len(pub.published) != 0 {
		t.Errorf("dry run published %d records", len(pub.published))
	}
}

func TestRunAbortsOnFetchError(t *testing.T) {
	upstream := errors.New("gateway timeout")
	pm := &fakePolymarket{err: upstream}
	store := &fakeStore{}

	job := NewCreateMarketsJob(pm, &fakeFootball{}, store, nil, nil, CreateMarketsConfig{}, discardLogger())

	_, err := job.Run(context.Background())
	if !errors.Is(err, upstream) {
		t.Fatalf("Run error = %v, want wrapped upstream error", err)
	}
	if len(store.inserted) != 0 {
		t.Errorf("inserted %d records after fetch failure", len(store.inserted))
	}
}

func TestRunAbortsOnInsertError(t *testing.T) {
	pm := &fakePolymarket{markets: []domain.NormalizedMarket{testMarket("pm-1", "Fed decision")}}
	store := &fakeStore{insertErr: errors.New("connection reset")}

	job := NewCreateMarketsJob(pm, &fakeFootball{}, store, nil, nil, CreateMarketsConfig{}, discardLogger())

	if _, err := job.Run(context.Background()); err == nil {
		t.Fatal("Run returned nil, want insert error")
	}
}

func TestRunSkipsMalformedEndDate(t *testing.T) {
	bad := testMarket("pm-bad", "Broken market")
	bad.EndDate = "not a timestamp"
	pm := &fakePolymarket{markets: []domain.NormalizedMarket{bad}}
	store := &fakeStore{}

	job := NewCreateMarketsJob(pm, &fakeFootball{}, store, nil, nil, CreateMarketsConfig{}, discardLogger())

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 || summary.Created != 0 {
		t.Errorf("summary = %+v, want 1 skipped, 0 created", summary)
	}
}

func TestRunArchivesBothSources(t *testing.T) {
	pm := &fakePolymarket{markets: []domain.NormalizedMarket{testMarket("pm-1", "Fed decision")}}
	fb := &fakeFootball{}
	arch := &fakeArchiver{}

	job := NewCreateMarketsJob(pm, fb, &fakeStore{}, arch, nil, CreateMarketsConfig{}, discardLogger())

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(arch.sources) != 2 {
		t.Fatalf("archived %d payloads, want 2", len(arch.sources))
	}
	if arch.sources[0] != domain.SourcePolymarket || arch.sources[1] != domain.SourceAPIFootball {
		t.Errorf("archive order = %v", arch.sources)
	}
}

type captureWriter struct {
	path        string
	contentType string
	body        []byte
}

func (c *captureWriter) Put(ctx context.Context, path string, data io.Reader, contentType string) error {
	c.path = path
	c.contentType = contentType
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	c.body = body
	return nil
}

func TestSnapshotArchiverKeyLayout(t *testing.T) {
	w := &captureWriter{}
	arch := NewSnapshotArchiver(w)
	arch.newID = func() string { return "0b1e0d9e-0000-4000-8000-000000000000" }

	fetchedAt := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	payload := []string{"one", "two"}

	if err := arch.Archive(context.Background(), domain.SourcePolymarket, fetchedAt, payload); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	want := "snapshots/polymarket/2026-09-01/0b1e0d9e-0000-4000-8000-000000000000.json"
	if w.path != want {
		t.Errorf("path = %q, want %q", w.path, want)
	}
	if w.contentType != "application/json" {
		t.Errorf("content type = %q", w.contentType)
	}
	if string(w.body) != `["one","two"]` {
		t.Errorf("body = %s", w.body)
	}
}

func TestRunLoopStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewCreateMarketsJob(&fakePolymarket{}, &fakeFootball{}, &fakeStore{}, nil, nil, CreateMarketsConfig{}, discardLogger())

	done := make(chan error, 1)
	go func() { done <- job.RunLoop(ctx, time.Hour) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunLoop error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunLoop did not stop after cancellation")
	}
}

func TestSkippingExistingLogLine(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	pm := &fakePolymarket{markets: []domain.NormalizedMarket{testMarket("pm-1", "Fed decision")}}
	store := &fakeStore{existing: map[string]bool{"pm-1": true}}

	job := NewCreateMarketsJob(pm, &fakeFootball{}, store, nil, nil, CreateMarketsConfig{}, logger)

	if _, err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "skipping existing: Fed decision") {
		t.Errorf("log output missing skip marker:\n%s", buf.String())
	}
}
