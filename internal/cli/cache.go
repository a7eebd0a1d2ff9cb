package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/pokedex-client/pkg/cache"
)

var errNoRedis = errors.New("no Redis configured (set --redis, cache.redis_url or POKEDEX_REDIS_URL)")

func (a *app) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Redis response cache",
	}
	cmd.AddCommand(a.newCacheClearCmd())
	return cmd
}

func (a *app) newCacheClearCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached responses of the configured API host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Cache.RedisURL == "" {
				return errNoRedis
			}

			host := ""
			if !all {
				u, err := url.Parse(a.cfg.API.BaseURL)
				if err != nil {
					return fmt.Errorf("parse base url: %w", err)
				}
				host = u.Host
			}

			ctx := cmd.Context()
			rdb, err := connectRedis(ctx, a.cfg.Cache.RedisURL)
			if err != nil {
				return err
			}
			defer rdb.Close()

			deleted, err := cache.NewManager(rdb).Purge(ctx, host)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			a.logger.Info().Str("host", host).Int("deleted", deleted).Msg("Cache cleared")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached responses\n", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "remove entries of every API host")
	return cmd
}
