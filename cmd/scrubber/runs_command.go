package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scrubber/internal/ledger"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show recent scrubbing runs from the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Ledger.Enabled {
				return errors.New("run ledger is disabled in configuration")
			}

			store, err := ledger.Open(cfg.LedgerPath())
			if err != nil {
				return fmt.Errorf("open run ledger: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var entries []ledger.Entry
			var statsLine string
			if len(args) == 1 {
				entries, err = store.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					return fmt.Errorf("no ledger entries for run %s", args[0])
				}
				stats, err := store.Stats(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				statsLine = fmt.Sprintf("%d files (%d completed, %d failed), %d rows, %d matched, %d unresolved",
					stats.Files, stats.Completed, stats.Failed, stats.Rows, stats.Matched, stats.Unresolved)
			} else {
				entries, err = store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "No runs recorded yet")
					return nil
				}
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := colorizeStatus(string(entry.Status), entry.Status == ledger.StatusCompleted, colorize)
				detail := entry.OutputPath
				if entry.ErrorMessage != "" {
					detail = entry.ErrorMessage
				}
				rows = append(rows, []string{
					shortRunID(entry.RunID),
					filepath.Base(entry.File),
					status,
					strconv.Itoa(entry.Rows),
					strconv.Itoa(entry.Matched),
					strconv.Itoa(entry.Unresolved),
					entry.FinishedAt.Local().Format(time.DateTime),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "File", "Status", "Rows", "Matched", "Unresolved", "Finished", "Detail"},
				rows, 4, 5, 6,
			))
			if statsLine != "" {
				fmt.Fprintln(out, statsLine)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to display")
	return cmd
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
