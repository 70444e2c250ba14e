package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scrubber/internal/registry"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	registryCmd := &cobra.Command{
		Use:   "registry",
		Short: "Master registry utilities",
	}

	registryCmd.AddCommand(newRegistryStatsCommand(ctx))

	return registryCmd
}

func newRegistryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Build the master index and report its lookup table sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			idx, fingerprint, err := registry.LoadFile(cfg.Paths.MasterFile, cfg.Matching.IDColumn, logger)
			if err != nil {
				return err
			}

			stats := idx.Stats()
			rows := [][]string{
				{"Records", strconv.Itoa(stats.Records)},
				{"ID+Name+Channel keys", strconv.Itoa(stats.Full)},
				{"ID+Name keys", strconv.Itoa(stats.IDName)},
				{"Name+Channel keys", strconv.Itoa(stats.NameChannel)},
				{"ID+Channel keys", strconv.Itoa(stats.IDChannel)},
				{"ID keys", strconv.Itoa(stats.IDOnly)},
				{"Name keys", strconv.Itoa(stats.NameOnly)},
				{"Scan list entries", strconv.Itoa(stats.NameList)},
				{"Columns", strconv.Itoa(len(idx.Columns()))},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registry: %s\n", cfg.Paths.MasterFile)
			fmt.Fprintf(out, "Snapshot: %.12s\n", fingerprint)
			fmt.Fprintln(out, renderTable([]string{"Table", "Size"}, rows, 2))
			return nil
		},
	}
}
