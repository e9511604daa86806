// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/database"
	"folio/internal/router"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/youtube"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "seed defaults before serving (always on in development)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"db_driver", cfg.Dialect(),
	)

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Seed defaults (no-op for anything that already exists).
	if cfg.IsDev() || seedOnStart {
		if err := database.Seed(ctx, db, cfg.Dialect(), seedOptions()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// Valkey backs cookie sessions and the oEmbed cache. Outside production
	// the API runs without it (bearer tokens only, uncached lookups).
	valkey, err := connectValkey(ctx)
	if err != nil {
		return err
	}
	var (
		sessions  *session.Store
		metaCache youtube.Cache
	)
	if valkey != nil {
		defer valkey.Close()
		sessions = session.NewStore(valkey, !cfg.IsDev())
		metaCache = cache.NewMetadataCache(valkey, cfg.OEmbedCacheTTL)
	}

	files, err := storage.New(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if files != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	svc := newService(db, youtube.NewResolver(cfg.YouTubeOEmbedURL, metaCache))

	r := router.New(router.Deps{
		DB:             db,
		Content:        svc,
		Sessions:       sessions,
		Tokens:         auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Files:          files,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SecureCookies:  !cfg.IsDev(),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second, // uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// connectValkey returns nil when Valkey is disabled or, outside
// production, unreachable.
func connectValkey(ctx context.Context) (*redis.Client, error) {
	if cfg.ValkeyHost == "" {
		if cfg.IsProduction() {
			return nil, errors.New("VALKEY_HOST is required in production")
		}
		slog.Warn("valkey disabled, cookie sessions and metadata cache off")
		return nil, nil
	}

	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("connect valkey: %w", err)
		}
		slog.Warn("valkey unreachable, cookie sessions and metadata cache off", "error", err)
		return nil, nil
	}
	return client, nil
}
