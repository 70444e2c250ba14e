package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"scrubber/internal/ledger"
	"scrubber/internal/resolve"
	"scrubber/internal/scrub"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Scrub target files against the master registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			if workers > 0 {
				cfg.Scrub.Workers = workers
			}

			// One writer per output directory at a time.
			lock := flock.New(filepath.Join(cfg.Paths.OutputDir, ".scrubber.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another scrubber run is already in progress")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			opts := []scrub.Option{}
			var store *ledger.Store
			if cfg.Ledger.Enabled {
				store, err = ledger.Open(cfg.LedgerPath())
				if err != nil {
					return fmt.Errorf("open run ledger: %w", err)
				}
				defer store.Close()
				opts = append(opts, scrub.WithRecorder(store))
			}

			processor := scrub.NewProcessor(cfg, logger, opts...)
			batch, err := processor.ProcessBatch(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(batch.Files))
			for _, file := range batch.Files {
				status := colorizeStatus("ok", true, colorize)
				detail := file.OutputPath
				if file.Failed() {
					status = colorizeStatus("failed", false, colorize)
					detail = file.Err.Error()
				}
				rows = append(rows, []string{
					filepath.Base(file.File),
					strconv.Itoa(file.Summary.Rows),
					strconv.Itoa(file.Summary.Matched),
					strconv.Itoa(file.Summary.Unresolved),
					status,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Rows", "Matched", "Unresolved", "Status", "Output"},
				rows, 2, 3, 4,
			))
			printTierCounts(out, batch)
			fmt.Fprintf(out, "Run %s (index reused: %s)\n", batch.RunID, yesNo(batch.IndexReused))

			if batch.FailedFiles > 0 {
				return fmt.Errorf("%d of %d files failed", batch.FailedFiles, len(batch.Files))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent file workers (overrides configuration)")
	return cmd
}

func printTierCounts(out io.Writer, batch *scrub.BatchResult) {
	totals := make(map[resolve.Tier]int)
	for _, file := range batch.Files {
		for tier, count := range file.Summary.ByTier {
			totals[tier] += count
		}
	}
	tiers := []resolve.Tier{
		resolve.TierFull,
		resolve.TierIDName,
		resolve.TierNameChannel,
		resolve.TierIDChannel,
		resolve.TierIDOnly,
		resolve.TierNameOnly,
		resolve.TierPartial,
		resolve.TierNone,
	}
	for _, tier := range tiers {
		if count := totals[tier]; count > 0 {
			fmt.Fprintf(out, "%s: %d\n", tier, count)
		}
	}
}
