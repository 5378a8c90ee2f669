package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// MarketReader is the service surface the market handler needs.
type MarketReader interface {
	TopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error)
	MarketsByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error)
	MarketByID(ctx context.Context, id string) (domain.NormalizedMarketDetail, error)
	OpenMarkets(ctx context.Context, opts domain.ListOpts) ([]domain.MarketRecord, error)
	StoredMarkets(ctx context.Context, source domain.Source, opts domain.ListOpts) ([]domain.MarketRecord, error)
	StoredMarket(ctx context.Context, sourceID string) (domain.MarketRecord, error)
}

// MarketHandler serves the market read endpoints.
type MarketHandler struct {
	markets MarketReader
	logger  *slog.Logger
}

// NewMarketHandler creates a MarketHandler.
func NewMarketHandler(markets MarketReader, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{markets: markets, logger: logger}
}

// listResponse wraps a market list with the count actually returned.
type listResponse struct {
	Markets []domain.NormalizedMarket `json:"markets"`
	Count   int                       `json:"count"`
}

// ListMarkets returns top markets, optionally filtered by tag.
// GET /api/markets?tag=crypto&limit=10
func (h *MarketHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 10)
	tag := r.URL.Query().Get("tag")

	var (
		markets []domain.NormalizedMarket
		err     error
	)
	if tag != "" {
		markets, err = h.markets.MarketsByTag(r.Context(), tag, limit)
	} else {
		markets, err = h.markets.TopMarkets(r.Context(), limit)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list markets failed",
			slog.String("tag", tag),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "failed to fetch markets")
		return
	}

	if markets == nil {
		markets = []domain.NormalizedMarket{}
	}
	writeJSON(w, http.StatusOK, listResponse{Markets: markets, Count: len(markets)})
}

// GetMarket returns one market's detail view.
// GET /api/markets/{id}
func (h *MarketHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing market id")
		return
	}

	detail, err := h.markets.MarketByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "market not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: get market failed",
			slog.String("market_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "failed to fetch market")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// storedMarket is the JSON shape for persisted rows.
type storedMarket struct {
	ID          int64    `json:"id"`
	SourceID    string   `json:"sourceId"`
	Source      string   `json:"source"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	EventType   string   `json:"eventType"`
	StartTime   string   `json:"startTime,omitempty"`
	EndTime     string   `json:"endTime"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags"`
	YesOdds     int      `json:"yesOdds"`
	NoOdds      int      `json:"noOdds"`
	Status      string   `json:"status"`
	Outcome     *string  `json:"outcome,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

type storedListResponse struct {
	Markets []storedMarket `json:"markets"`
	Count   int            `json:"count"`
}

// ListOpenMarkets returns persisted rows still open, soonest-ending first.
// GET /api/markets/open?limit=50&offset=0
func (h *MarketHandler) ListOpenMarkets(w http.ResponseWriter, r *http.Request) {
	records, err := h.markets.OpenMarkets(r.Context(), parseListOpts(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list open markets failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list open markets")
		return
	}
	writeStoredList(w, records)
}

// ListStoredMarkets returns persisted rows for one source.
// GET /api/markets/stored?source=polymarket&limit=50
func (h *MarketHandler) ListStoredMarkets(w http.ResponseWriter, r *http.Request) {
	source := domain.Source(r.URL.Query().Get("source"))
	switch source {
	case domain.SourcePolymarket, domain.SourceAPIFootball, domain.SourceWorldCup:
	default:
		writeError(w, http.StatusBadRequest, "unknown source")
		return
	}

	records, err := h.markets.StoredMarkets(r.Context(), source, parseListOpts(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "handler: list stored markets failed",
			slog.String("source", string(source)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list stored markets")
		return
	}
	writeStoredList(w, records)
}

// GetStoredMarket returns one persisted row by its upstream source ID.
// GET /api/markets/stored/{sourceId}
func (h *MarketHandler) GetStoredMarket(w http.ResponseWriter, r *http.Request) {
	sourceID := r.PathValue("sourceId")
	if sourceID == "" {
		writeError(w, http.StatusBadRequest, "missing source id")
		return
	}

	rec, err := h.markets.StoredMarket(r.Context(), sourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "market not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "handler: get stored market failed",
			slog.String("source_id", sourceID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to fetch market")
		return
	}

	writeJSON(w, http.StatusOK, toStoredMarket(rec))
}

func writeStoredList(w http.ResponseWriter, records []domain.MarketRecord) {
	out := make([]storedMarket, 0, len(records))
	for _, rec := range records {
		out = append(out, toStoredMarket(rec))
	}
	writeJSON(w, http.StatusOK, storedListResponse{Markets: out, Count: len(out)})
}

func toStoredMarket(rec domain.MarketRecord) storedMarket {
	m := storedMarket{
		ID:          rec.ID,
		SourceID:    rec.SourceID,
		Source:      string(rec.Source),
		Title:       rec.Title,
		Description: rec.Description,
		Category:    rec.Category,
		EventType:   rec.EventType,
		EndTime:     rec.EndTime.UTC().Format(time.RFC3339),
		Image:       rec.Image,
		Tags:        rec.Tags,
		YesOdds:     rec.YesOdds,
		NoOdds:      rec.NoOdds,
		Status:      string(rec.Status),
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !rec.StartTime.IsZero() {
		m.StartTime = rec.StartTime.UTC().Format(time.RFC3339)
	}
	if rec.Outcome != nil {
		o := string(*rec.Outcome)
		m.Outcome = &o
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m
}
