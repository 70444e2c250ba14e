package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"scrubber/internal/ledger"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close ledger: %v", err)
		}
	})
	return store
}

func TestRecordAndReadRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	entries := []ledger.Entry{
		{
			RunID:      "run-1",
			File:       "claims_jan.csv",
			OutputPath: "/out/Scrubbed_claims_jan.csv",
			Status:     ledger.StatusCompleted,
			Rows:       120,
			Matched:    100,
			Unresolved: 20,
			StartedAt:  started,
			FinishedAt: started.Add(2 * time.Second),
		},
		{
			RunID:        "run-1",
			File:         "claims_feb.csv",
			Status:       ledger.StatusFailed,
			ErrorMessage: "file is empty",
			StartedAt:    started.Add(3 * time.Second),
			FinishedAt:   started.Add(4 * time.Second),
		},
	}
	for _, entry := range entries {
		if _, err := store.RecordFile(ctx, entry); err != nil {
			t.Fatalf("record %s: %v", entry.File, err)
		}
	}

	got, err := store.Run(ctx, "run-1")
	if err != nil {
		t.Fatalf("read run: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].File != "claims_jan.csv" || got[1].File != "claims_feb.csv" {
		t.Fatalf("entries out of insertion order: %q, %q", got[0].File, got[1].File)
	}
	if got[0].Status != ledger.StatusCompleted {
		t.Fatalf("status = %q, want completed", got[0].Status)
	}
	if got[0].Rows != 120 || got[0].Matched != 100 || got[0].Unresolved != 20 {
		t.Fatalf("counts = %d/%d/%d", got[0].Rows, got[0].Matched, got[0].Unresolved)
	}
	if !got[0].StartedAt.Equal(started) {
		t.Fatalf("started at = %v, want %v", got[0].StartedAt, started)
	}
	if got[1].ErrorMessage != "file is empty" {
		t.Fatalf("error message = %q", got[1].ErrorMessage)
	}
	if got[1].OutputPath != "" {
		t.Fatalf("failed entry should have no output path, got %q", got[1].OutputPath)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, file := range []string{"a.csv", "b.csv", "c.csv"} {
		entry := ledger.Entry{
			RunID:      "run-2",
			File:       file,
			Status:     ledger.StatusCompleted,
			StartedAt:  now,
			FinishedAt: now,
		}
		if _, err := store.RecordFile(ctx, entry); err != nil {
			t.Fatalf("record %s: %v", file, err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].File != "c.csv" || got[1].File != "b.csv" {
		t.Fatalf("unexpected order: %q, %q", got[0].File, got[1].File)
	}
}

func TestStatsAggregatesRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	records := []ledger.Entry{
		{RunID: "run-3", File: "a.csv", Status: ledger.StatusCompleted, Rows: 10, Matched: 8, Unresolved: 2, StartedAt: now, FinishedAt: now},
		{RunID: "run-3", File: "b.csv", Status: ledger.StatusCompleted, Rows: 5, Matched: 5, StartedAt: now, FinishedAt: now},
		{RunID: "run-3", File: "c.csv", Status: ledger.StatusFailed, ErrorMessage: "unreadable", StartedAt: now, FinishedAt: now},
		{RunID: "other", File: "d.csv", Status: ledger.StatusCompleted, Rows: 99, Matched: 99, StartedAt: now, FinishedAt: now},
	}
	for _, entry := range records {
		if _, err := store.RecordFile(ctx, entry); err != nil {
			t.Fatalf("record %s: %v", entry.File, err)
		}
	}

	stats, err := store.Stats(ctx, "run-3")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Files != 3 || stats.Completed != 2 || stats.Failed != 1 {
		t.Fatalf("file counts = %d/%d/%d", stats.Files, stats.Completed, stats.Failed)
	}
	if stats.Rows != 15 || stats.Matched != 13 || stats.Unresolved != 2 {
		t.Fatalf("row counts = %d/%d/%d", stats.Rows, stats.Matched, stats.Unresolved)
	}
}

func TestRecordFileValidation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.RecordFile(ctx, ledger.Entry{File: "a.csv", Status: ledger.StatusCompleted}); err == nil {
		t.Fatal("expected error for missing run id")
	}
	if _, err := store.RecordFile(ctx, ledger.Entry{RunID: "run", Status: ledger.StatusCompleted}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
