// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/content"
	"folio/internal/database"
	"folio/internal/store"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// cfg is loaded by PersistentPreRunE for every command but version.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio content API",
	Long: `folio serves the JSON API behind a personal portfolio site: videos,
portfolio items, categories and site settings, with a single admin account.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./folio.yaml or /etc/folio/folio.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(passwdCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and installs the default logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	c, err := config.LoadFile(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	// Structured logger: JSON in production, text elsewhere.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// openDB connects to the configured database and applies migrations.
func openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.Connect(ctx, cfg.Dialect(), cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, cfg.Dialect()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// newService wires the SQL repositories into the content facade.
func newService(db *sql.DB, resolver content.MetadataResolver) *content.Service {
	d := cfg.Dialect()
	return content.NewService(content.Deps{
		Categories: store.NewCategoryStore(db, d),
		Videos:     store.NewVideoStore(db, d),
		Portfolio:  store.NewPortfolioStore(db, d),
		Settings:   store.NewSiteSettingStore(db, d),
		Users:      store.NewUserStore(db, d),
		Resolver:   resolver,
	})
}

func seedOptions() database.SeedOptions {
	return database.SeedOptions{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AdminEmail:    cfg.AdminEmail,
	}
}
