package scrub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"scrubber/internal/config"
	"scrubber/internal/enrich"
	"scrubber/internal/ledger"
	"scrubber/internal/logging"
	"scrubber/internal/registry"
	"scrubber/internal/resolve"
	"scrubber/internal/tabular"
)

// Recorder receives per-file outcomes. The SQLite ledger store satisfies it.
type Recorder interface {
	RecordFile(ctx context.Context, entry ledger.Entry) (int64, error)
}

// Processor runs target files through the resolution engine.
type Processor struct {
	cfg      *config.Config
	logger   *slog.Logger
	log      *slog.Logger
	cache    *registry.Cache
	recorder Recorder
}

// Option customizes Processor construction.
type Option func(*Processor)

// WithCache shares a registry index cache across processors. Without it the
// processor owns a private cache, which still deduplicates builds within a
// session.
func WithCache(cache *registry.Cache) Option {
	return func(p *Processor) {
		p.cache = cache
	}
}

// WithRecorder attaches a run ledger. Without it outcomes are logged only.
func WithRecorder(recorder Recorder) Option {
	return func(p *Processor) {
		p.recorder = recorder
	}
}

// NewProcessor creates a Processor with the provided options.
func NewProcessor(cfg *config.Config, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Processor{
		cfg:    cfg,
		logger: logger,
		log:    logging.NewComponentLogger(logger, "scrub"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cache == nil {
		p.cache = registry.NewCache(logger)
	}
	return p
}

// LoadIndex reads the configured registry file and returns its index,
// reusing a cached build when the file content is unchanged. The bool
// reports cache reuse.
func (p *Processor) LoadIndex() (*registry.Index, bool, error) {
	path := p.cfg.Paths.MasterFile
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("master registry unavailable: %w", err)
	}
	fingerprint := registry.Fingerprint(data)
	idx, reused, err := p.cache.GetOrBuild(fingerprint, func() (*registry.Index, error) {
		table, warnings, err := tabular.Read(data)
		if err != nil {
			return nil, fmt.Errorf("master registry unavailable: parse %s: %w", path, err)
		}
		for _, warning := range warnings {
			p.log.Warn("registry row repaired",
				logging.Int("row", warning.Row),
				logging.String("detail", warning.Message),
			)
		}
		return registry.Build(table, p.cfg.Matching.IDColumn, p.logger), nil
	})
	if err != nil {
		return nil, false, err
	}
	return idx, reused, nil
}

// Scrub runs one table through the tier cascade and returns the enriched
// table plus per-tier counts. The input table is not modified; rows are
// processed strictly in input order and the output holds exactly one row
// per input row.
func (p *Processor) Scrub(idx *registry.Index, table *tabular.Table) (*tabular.Table, Summary) {
	resolver := resolve.New(idx, resolve.Options{
		IDColumn:              p.cfg.Matching.IDColumn,
		ChannelColumns:        p.cfg.Matching.ChannelColumns,
		MinPartialAliasLength: p.cfg.Matching.MinPartialAliasLength,
		ChannelTiers:          p.cfg.Matching.ChannelTiers,
		PartialMatchTier:      p.cfg.Matching.PartialMatchTier,
	})
	merger := enrich.NewMerger(idx.Columns(), p.cfg.Matching.IDColumn)

	out := tabular.New(merger.OutputColumns(table.Columns)...)
	summary := newSummary()
	for _, row := range table.Rows {
		match := resolver.Resolve(table.Columns, row)
		summary.record(match)
		out.Append(merger.Merge(table.Columns, row, match))
	}
	return out, summary
}

// ProcessFile scrubs a single target file and writes the enriched output
// into the configured output directory.
func (p *Processor) ProcessFile(idx *registry.Index, path string) FileResult {
	start := time.Now()
	result := FileResult{File: path}

	table, warnings, err := tabular.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read target: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	result.Warnings = len(warnings)
	for _, warning := range warnings {
		p.log.Warn("target row repaired",
			logging.String("file", filepath.Base(path)),
			logging.Int("row", warning.Row),
			logging.String("detail", warning.Message),
		)
	}

	enriched, summary := p.Scrub(idx, table)
	result.Summary = summary

	outPath := p.outputPath(path)
	if err := tabular.WriteFile(outPath, enriched); err != nil {
		result.Err = fmt.Errorf("write output: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	result.OutputPath = outPath
	result.Duration = time.Since(start)

	p.log.Info("file scrubbed",
		logging.String("file", filepath.Base(path)),
		logging.Int("rows", summary.Rows),
		logging.Int("matched", summary.Matched),
		logging.Int("unresolved", summary.Unresolved),
		logging.Duration("duration", result.Duration),
	)
	return result
}

// ProcessBatch scrubs every target file against one index load. Per-file
// failures are isolated; the returned error covers batch-level failures
// only (an unreadable registry, or no input files).
func (p *Processor) ProcessBatch(ctx context.Context, files []string) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, errors.New("no target files to process")
	}

	idx, reused, err := p.LoadIndex()
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{
		RunID:       uuid.NewString(),
		IndexReused: reused,
		Files:       make([]FileResult, len(files)),
	}
	log := p.log.With(logging.String("run_id", batch.RunID))
	stats := idx.Stats()
	log.Info("batch started",
		logging.Int("files", len(files)),
		logging.Int("registry_records", stats.Records),
		logging.Bool("index_reused", reused),
	)

	workers := p.cfg.Scrub.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	type job struct {
		pos  int
		path string
	}
	jobs := make(chan job)
	starts := make([]time.Time, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				starts[j.pos] = time.Now()
				batch.Files[j.pos] = p.ProcessFile(idx, j.path)
			}
		}()
	}
	for i, path := range files {
		select {
		case jobs <- job{pos: i, path: path}:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	for i := range batch.Files {
		result := &batch.Files[i]
		if result.Failed() {
			batch.FailedFiles++
			log.Error("file failed",
				logging.String("file", filepath.Base(result.File)),
				logging.Error(result.Err),
			)
		}
		if err := p.recordFile(ctx, batch.RunID, starts[i], result); err != nil {
			log.Warn("ledger write failed",
				logging.String("file", filepath.Base(result.File)),
				logging.Error(err),
			)
		}
	}

	log.Info("batch finished",
		logging.Int("files", len(files)),
		logging.Int("failed", batch.FailedFiles),
	)
	return batch, nil
}

func (p *Processor) recordFile(ctx context.Context, runID string, started time.Time, result *FileResult) error {
	if p.recorder == nil {
		return nil
	}
	entry := ledger.Entry{
		RunID:      runID,
		File:       result.File,
		OutputPath: result.OutputPath,
		Status:     ledger.StatusCompleted,
		Rows:       result.Summary.Rows,
		Matched:    result.Summary.Matched,
		Unresolved: result.Summary.Unresolved,
		StartedAt:  started,
		FinishedAt: started.Add(result.Duration),
	}
	if result.Failed() {
		entry.Status = ledger.StatusFailed
		entry.ErrorMessage = result.Err.Error()
	}
	_, err := p.recorder.RecordFile(ctx, entry)
	return err
}

func (p *Processor) outputPath(target string) string {
	name := p.cfg.Output.Prefix + filepath.Base(target)
	return filepath.Join(p.cfg.Paths.OutputDir, name)
}
