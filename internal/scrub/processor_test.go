package scrub_test

import (
	"context"
	"path/filepath"
	"testing"

	"scrubber/internal/ledger"
	"scrubber/internal/scrub"
	"scrubber/internal/tabular"
	"scrubber/internal/testsupport"
)

func TestScrubPartialMatchFillsMasterColumns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)
	idx, reused, err := p.LoadIndex()
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if reused {
		t.Fatal("first load should build, not reuse")
	}

	table := tabular.New("Payer Name", "Clearinghouse ID")
	table.Append(tabular.Row{"Payer Name": "Triwest", "Clearinghouse ID": "AVAILITY"})

	out, summary := p.Scrub(idx, table)
	if out.Len() != 1 {
		t.Fatalf("expected 1 output row, got %d", out.Len())
	}
	row := out.Rows[0]
	// The registry stores the raw "7077"; the filled-in identifier must be
	// the standardized form.
	if row.Get("Payer ID") != "07077" {
		t.Fatalf("Payer ID = %q, want 07077", row.Get("Payer ID"))
	}
	if row.Get("Plan Type") != "TRICARE" {
		t.Fatalf("Plan Type = %q, want TRICARE", row.Get("Plan Type"))
	}
	if row.Get("Payer Std?") != "Yes" {
		t.Fatalf("status = %q, want Yes", row.Get("Payer Std?"))
	}
	if row.Get("Search Method") != "Partial: 'triwest' in Master" {
		t.Fatalf("method = %q", row.Get("Search Method"))
	}
	if summary.Matched != 1 || summary.Unresolved != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	wantColumns := []string{"Payer Name", "Clearinghouse ID", "Payer ID", "Clean_payer Name", "Source_File", "Plan Type", "Payer Std?", "Search Method"}
	if len(out.Columns) != len(wantColumns) {
		t.Fatalf("columns = %v", out.Columns)
	}
	for i, want := range wantColumns {
		if out.Columns[i] != want {
			t.Fatalf("column %d = %q, want %q", i, out.Columns[i], want)
		}
	}
}

func TestScrubIDOnlyWithoutNameColumns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)
	idx, _, err := p.LoadIndex()
	if err != nil {
		t.Fatalf("load index: %v", err)
	}

	table := tabular.New("Payer ID", "Claim")
	table.Append(tabular.Row{"Payer ID": "7077-NOCD", "Claim": "X1"})

	out, _ := p.Scrub(idx, table)
	row := out.Rows[0]
	if row.Get("Payer ID") != "7077-NOCD" {
		t.Fatalf("target identifier overwritten: %q", row.Get("Payer ID"))
	}
	if row.Get("Payer Name") != "TriWest Healthcare Alliance" {
		t.Fatalf("Payer Name = %q", row.Get("Payer Name"))
	}
	if row.Get("Search Method") != "Tier 3: ID Only" {
		t.Fatalf("method = %q", row.Get("Search Method"))
	}
}

func TestScrubFullCompositeTier(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)
	idx, _, err := p.LoadIndex()
	if err != nil {
		t.Fatalf("load index: %v", err)
	}

	table := tabular.New("Payer ID", "Payer Name", "Source_File")
	table.Append(tabular.Row{"Payer ID": "123.0", "Payer Name": "Acme Health", "Source_File": "emdeon"})

	out, _ := p.Scrub(idx, table)
	row := out.Rows[0]
	if row.Get("Search Method") != "Tier 1: ID+Name+CH" {
		t.Fatalf("method = %q", row.Get("Search Method"))
	}
	if row.Get("Plan Type") != "HMO" {
		t.Fatalf("Plan Type = %q", row.Get("Plan Type"))
	}
}

func TestScrubUnresolvedRowGetsStampsOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)
	idx, _, err := p.LoadIndex()
	if err != nil {
		t.Fatalf("load index: %v", err)
	}

	table := tabular.New("Payer Name")
	table.Append(tabular.Row{"Payer Name": "Nowhere Mutual"})

	out, summary := p.Scrub(idx, table)
	row := out.Rows[0]
	if row.Get("Payer Std?") != "No" {
		t.Fatalf("status = %q, want No", row.Get("Payer Std?"))
	}
	if row.Get("Search Method") != "Unresolved" {
		t.Fatalf("method = %q", row.Get("Search Method"))
	}
	if row.Get("Payer ID") != "" {
		t.Fatalf("unresolved row gained master data: %q", row.Get("Payer ID"))
	}
	if summary.Unresolved != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestProcessFileWritesPrefixedOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)
	idx, _, err := p.LoadIndex()
	if err != nil {
		t.Fatalf("load index: %v", err)
	}

	target := filepath.Join(testsupport.BaseDir(cfg), "claims.csv")
	testsupport.WriteCSV(t, target, "Payer Name,Claim\nTriwest,X1\nNowhere Mutual,X2\n")

	result := p.ProcessFile(idx, target)
	if result.Failed() {
		t.Fatalf("process file: %v", result.Err)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "Scrubbed_claims.csv")
	if result.OutputPath != want {
		t.Fatalf("output path = %q, want %q", result.OutputPath, want)
	}

	written, _, err := tabular.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if written.Len() != 2 {
		t.Fatalf("expected one output row per input row, got %d", written.Len())
	}
	if written.Rows[0].Get("Payer Std?") != "Yes" || written.Rows[1].Get("Payer Std?") != "No" {
		t.Fatalf("stamps = %q, %q", written.Rows[0].Get("Payer Std?"), written.Rows[1].Get("Payer Std?"))
	}
	if result.Summary.Matched != 1 || result.Summary.Unresolved != 1 {
		t.Fatalf("summary = %+v", result.Summary)
	}
}

func TestProcessBatchIsolatesFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWorkers(2))
	store := testsupport.MustOpenLedger(t, cfg)
	p := scrub.NewProcessor(cfg, nil, scrub.WithRecorder(store))

	base := testsupport.BaseDir(cfg)
	good := filepath.Join(base, "good.csv")
	testsupport.WriteCSV(t, good, "Payer Name\nAcme Health\n")
	empty := filepath.Join(base, "empty.csv")
	testsupport.WriteCSV(t, empty, "")
	missing := filepath.Join(base, "missing.csv")

	batch, err := p.ProcessBatch(context.Background(), []string{good, empty, missing})
	if err != nil {
		t.Fatalf("process batch: %v", err)
	}
	if batch.RunID == "" {
		t.Fatal("expected a run id")
	}
	if batch.FailedFiles != 2 {
		t.Fatalf("failed files = %d, want 2", batch.FailedFiles)
	}
	if batch.Files[0].File != good || batch.Files[0].Failed() {
		t.Fatalf("good file result: %+v", batch.Files[0])
	}
	if !batch.Files[1].Failed() || !batch.Files[2].Failed() {
		t.Fatal("expected failures for empty and missing files")
	}

	entries, err := store.Run(context.Background(), batch.RunID)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", len(entries))
	}
	if entries[0].Status != ledger.StatusCompleted {
		t.Fatalf("first entry status = %q", entries[0].Status)
	}
	if entries[1].Status != ledger.StatusFailed || entries[1].ErrorMessage == "" {
		t.Fatalf("failed entry = %+v", entries[1])
	}
}

func TestProcessBatchReusesCachedIndex(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)

	target := filepath.Join(testsupport.BaseDir(cfg), "claims.csv")
	testsupport.WriteCSV(t, target, "Payer Name\nAcme Health\n")

	first, err := p.ProcessBatch(context.Background(), []string{target})
	if err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if first.IndexReused {
		t.Fatal("first batch should build the index")
	}
	second, err := p.ProcessBatch(context.Background(), []string{target})
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if !second.IndexReused {
		t.Fatal("second batch should reuse the cached index")
	}
	if first.RunID == second.RunID {
		t.Fatal("each batch needs its own run id")
	}
}

func TestProcessBatchRequiresFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := scrub.NewProcessor(cfg, nil)
	if _, err := p.ProcessBatch(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty batch")
	}
}

func TestProcessBatchFailsWithoutRegistry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.MasterFile = filepath.Join(testsupport.BaseDir(cfg), "absent.csv")
	p := scrub.NewProcessor(cfg, nil)

	target := filepath.Join(testsupport.BaseDir(cfg), "claims.csv")
	testsupport.WriteCSV(t, target, "Payer Name\nAcme Health\n")

	if _, err := p.ProcessBatch(context.Background(), []string{target}); err == nil {
		t.Fatal("expected registry load failure")
	}
}
