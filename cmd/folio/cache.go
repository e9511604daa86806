// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the Valkey cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush [video-id...]",
	Short: "Drop cached YouTube metadata, for the given videos or all of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if cfg.ValkeyHost == "" {
			return errors.New("valkey is not configured (VALKEY_HOST is empty)")
		}

		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer client.Close()

		mc := cache.NewMetadataCache(client, cfg.OEmbedCacheTTL)
		if len(args) > 0 {
			for _, id := range args {
				mc.Invalidate(ctx, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed cached entries for %d videos\n", len(args))
			return nil
		}
		n := mc.InvalidateAll(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached entries\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
}
