package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/pokedex-client/internal/notify"
	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/metrics"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
)

// fetch runs the full retrieval with the resolved configuration. It is the
// pager's FetchFunc as well.
func (a *app) fetch(ctx context.Context) ([]pokedex.Record, error) {
	clientCfg := a.cfg.ClientConfig()

	if a.cfg.Cache.RedisURL != "" {
		rdb, err := connectRedis(ctx, a.cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		defer rdb.Close()
		clientCfg.Redis = rdb
		a.logger.Debug().Str("redis", rdb.Options().Addr).Msg("Response cache enabled")
	}

	api, err := client.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	defer api.Close()

	table, err := a.cfg.Table()
	if err != nil {
		return nil, err
	}

	fetcher, err := pokedex.NewFetcher(api, pokedex.FetcherConfig{
		Concurrency: a.cfg.Fetch.Concurrency,
		Table:       table,
	})
	if err != nil {
		return nil, err
	}

	return fetcher.FetchClassified(ctx, a.cfg.Fetch.Count)
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// reportFailure logs a fetch error and raises the danger notification.
func (a *app) reportFailure(err error) {
	a.logger.Error().Err(err).Msg("Fetch failed")
	a.notifier.Notify(notify.LevelDanger, notify.FetchFailedMessage)
}

// writeMetrics dumps metrics when a textfile is configured.
func (a *app) writeMetrics() {
	path := a.cfg.Metrics.Textfile
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Failed to write metrics")
		return
	}
	a.logger.Info().Str("path", path).Msg("Metrics written")
}
