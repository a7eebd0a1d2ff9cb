package pokedex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultCount fetches ids 1..39.
const DefaultCount = 40

// JSONGetter retrieves and decodes one API resource. *client.Client implements it.
type JSONGetter interface {
	GetJSON(ctx context.Context, endpoint string, v any) error
}

// FetcherConfig holds fetcher settings.
type FetcherConfig struct {
	// Concurrency is the maximum number of requests in flight.
	// 1 fetches strictly sequentially.
	Concurrency int

	// Table decides each record's category. Zero value uses DefaultTable.
	Table Table
}

// DefaultFetcherConfig returns a sequential fetcher with the built-in table.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		Concurrency: 1,
		Table:       DefaultTable(),
	}
}

// Fetcher retrieves and classifies records.
type Fetcher struct {
	api    JSONGetter
	config FetcherConfig
	logger zerolog.Logger
}

// NewFetcher creates a fetcher on top of api.
func NewFetcher(api JSONGetter, cfg FetcherConfig) (*Fetcher, error) {
	if api == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Table.Len() == 0 {
		cfg.Table = DefaultTable()
	}

	return &Fetcher{
		api:    api,
		config: cfg,
		logger: log.With().Str("component", "pokedex-fetcher").Logger(),
	}, nil
}

// Table returns the classification table in use.
func (f *Fetcher) Table() Table {
	return f.config.Table
}

// pokemonPayload is the subset of the PokeAPI pokemon resource we read.
type pokemonPayload struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

func (p pokemonPayload) typeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// FetchOne retrieves and classifies a single record.
func (f *Fetcher) FetchOne(ctx context.Context, id int) (Record, error) {
	var payload pokemonPayload
	if err := f.api.GetJSON(ctx, strconv.Itoa(id), &payload); err != nil {
		return Record{}, &RetrievalError{ID: id, Err: err}
	}

	if payload.ID <= 0 || payload.Name == "" {
		return Record{}, &RetrievalError{
			ID:  id,
			Err: fmt.Errorf("%w: missing id or name", ErrMalformedRecord),
		}
	}

	return NewRecord(payload.ID, payload.Name, payload.typeNames(), f.config.Table), nil
}

// FetchClassified retrieves ids 1..count-1 and returns them classified, in
// id order. Any failed retrieval aborts the run; no partial result is returned.
func (f *Fetcher) FetchClassified(ctx context.Context, count int) ([]Record, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidCount, count)
	}

	n := count - 1
	logger := f.logger.With().Str("run_id", uuid.New().String()).Logger()
	start := time.Now()

	logger.Info().
		Int("records", n).
		Int("concurrency", f.config.Concurrency).
		Msg("Starting fetch")

	var records []Record
	var err error
	if f.config.Concurrency == 1 {
		records, err = f.fetchSequential(ctx, n, logger)
	} else {
		records, err = f.fetchConcurrent(ctx, n, logger)
	}
	fetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		fetchFailuresTotal.Inc()
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Fetch aborted")
		return nil, err
	}

	for _, r := range records {
		recordsByCategoryTotal.WithLabelValues(r.Category).Inc()
	}
	recordsFetchedTotal.Add(float64(len(records)))

	logger.Info().
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return records, nil
}

// fetchSequential issues request n only after request n-1 completed.
func (f *Fetcher) fetchSequential(ctx context.Context, n int, logger zerolog.Logger) ([]Record, error) {
	records := make([]Record, 0, n)
	for id := 1; id <= n; id++ {
		if err := ctx.Err(); err != nil {
			return nil, &RetrievalError{ID: id, Err: err}
		}

		record, err := f.FetchOne(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)

		logger.Debug().Int("id", id).Str("category", record.Category).Msg("Record fetched")
	}
	return records, nil
}

// fetchConcurrent keeps at most Concurrency requests in flight. Each result
// lands in its id's slot, so output order doesn't depend on completion order.
func (f *Fetcher) fetchConcurrent(ctx context.Context, n int, logger zerolog.Logger) ([]Record, error) {
	records := make([]Record, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.Concurrency)

	for id := 1; id <= n; id++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &RetrievalError{ID: id, Err: err}
			}

			record, err := f.FetchOne(gctx, id)
			if err != nil {
				return err
			}
			records[id-1] = record
			logger.Debug().Int("id", id).Str("category", record.Category).Msg("Record fetched")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
