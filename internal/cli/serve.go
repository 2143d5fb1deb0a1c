package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarlovic/gitfolio/internal/config"
	"github.com/mkarlovic/gitfolio/internal/server"
	"github.com/mkarlovic/gitfolio/internal/views"
	"github.com/mkarlovic/gitfolio/pkg/github"
	"github.com/mkarlovic/gitfolio/pkg/kvstore"
)

const shutdownTimeout = 10 * time.Second

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portfolio backend",
		Long: `Start the HTTP server that fetches GitHub profiles and tracks page views.

Without a Redis address configured, the view counter runs in local mock mode
and serves fixed counts. Without a GitHub token, only the unauthenticated
REST API is used (lower rate limits, no contribution data).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "gitfolio.toml", "path to TOML config file")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	gh := github.NewClient(cfg.GitHubToken)
	profiles := github.NewProfileCache(github.DefaultProfileTTL)

	var store kvstore.Store
	var hasher *views.IPHasher
	if cfg.Redis.Addr != "" {
		rs, err := kvstore.NewRedisStore(ctx, kvstore.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rs.Close()
		store = rs

		// With a reachable store, the IP-dedup layer is live and a weak
		// hashing secret is a deployment error, not something to limp
		// past.
		hasher, err = views.NewIPHasher(cfg.IPHashSecret)
		if err != nil {
			return fmt.Errorf("ip dedup misconfigured: %w", err)
		}
	}

	counter := views.NewCounter(store, views.NewCountCache(), hasher, logger)
	srv := server.New(gh, profiles, counter, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	printSuccess("Listening on %s", cfg.Addr)
	if cfg.GitHubToken == "" {
		printWarning("no GitHub token configured, REST API only (rate limited)")
	}
	if store == nil {
		printInfo("view counter in local mock mode")
		printDetail("set REDIS_ADDR to enable durable view counts")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
