// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the admin account, default categories and settings",
	Long: `seed creates the admin account from ADMIN_USERNAME / ADMIN_PASSWORD,
the default category tree and the default site settings. Rows that already
exist are left untouched, so running it twice is harmless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Seed(ctx, db, cfg.Dialect(), seedOptions()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
		return nil
	},
}
