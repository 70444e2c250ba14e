package enrich_test

import (
	"testing"

	"scrubber/internal/enrich"
	"scrubber/internal/resolve"
	"scrubber/internal/tabular"
)

var masterColumns = []string{"Payer ID", "Payer Name", "Source_File", "Plan Type"}

func TestOutputColumnsOrder(t *testing.T) {
	merger := enrich.NewMerger(masterColumns, "Payer ID")
	got := merger.OutputColumns([]string{"Claim", "Payer Name"})
	want := []string{"Claim", "Payer Name", "Payer ID", "Source_File", "Plan Type", "Payer Std?", "Search Method"}
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMergeAppendsMissingMasterColumns(t *testing.T) {
	merger := enrich.NewMerger(masterColumns, "Payer ID")
	master := tabular.Row{"Payer ID": "07077", "Payer Name": "Triwest Healthcare", "Plan Type": "TRICARE"}
	targetColumns := []string{"Payer Name"}
	row := tabular.Row{"Payer Name": "Triwest"}

	out := merger.Merge(targetColumns, row, resolve.Match{Record: master, Tier: resolve.TierPartial, Alias: "triwest", AliasInMaster: true})
	if out.Get("Payer ID") != "07077" {
		t.Fatalf("expected master id copied, got %q", out.Get("Payer ID"))
	}
	if out.Get("Payer Std?") != "Yes" {
		t.Fatalf("expected Yes stamp, got %q", out.Get("Payer Std?"))
	}
	if out.Get("Search Method") != "Partial: 'triwest' in Master" {
		t.Fatalf("unexpected method stamp: %q", out.Get("Search Method"))
	}
	// Input row untouched.
	if _, ok := row["Payer ID"]; ok {
		t.Fatal("input row was mutated")
	}
}

func TestMergeStandardizesCopiedIdentifier(t *testing.T) {
	merger := enrich.NewMerger(masterColumns, "Payer ID")
	// Registry stores the raw short id; the enriched row must carry the
	// standardized form.
	master := tabular.Row{"Payer ID": "7077", "Payer Name": "Triwest Healthcare"}
	row := tabular.Row{"Payer Name": "Triwest", "Clearinghouse ID": "AVAILITY"}

	out := merger.Merge([]string{"Payer Name", "Clearinghouse ID"}, row, resolve.Match{
		Record: master, Tier: resolve.TierPartial, Alias: "triwest", AliasInMaster: true,
	})
	if out.Get("Payer ID") != "07077" {
		t.Fatalf("Payer ID = %q, want 07077", out.Get("Payer ID"))
	}
	// Existing target columns stay untouched.
	if out.Get("Payer Name") != "Triwest" {
		t.Fatalf("target column overwritten: %q", out.Get("Payer Name"))
	}
}

func TestMergeNeverOverwritesTargetColumns(t *testing.T) {
	merger := enrich.NewMerger(masterColumns, "Payer ID")
	master := tabular.Row{"Payer ID": "07077", "Payer Name": "Triwest Healthcare"}
	targetColumns := []string{"Payer ID", "Payer Name"}
	row := tabular.Row{"Payer ID": "7077-NOCD", "Payer Name": "Triwest"}

	out := merger.Merge(targetColumns, row, resolve.Match{Record: master, Tier: resolve.TierIDOnly})
	if out.Get("Payer ID") != "7077-NOCD" {
		t.Fatalf("target column overwritten: %q", out.Get("Payer ID"))
	}
	if out.Get("Payer Name") != "Triwest" {
		t.Fatalf("target column overwritten: %q", out.Get("Payer Name"))
	}
}

func TestMergeUnresolvedStampsOnly(t *testing.T) {
	merger := enrich.NewMerger(masterColumns, "Payer ID")
	row := tabular.Row{"Payer Name": "Nowhere Health"}

	out := merger.Merge([]string{"Payer Name"}, row, resolve.Match{})
	if out.Get("Payer Std?") != "No" {
		t.Fatalf("expected No stamp, got %q", out.Get("Payer Std?"))
	}
	if out.Get("Search Method") != "Unresolved" {
		t.Fatalf("expected Unresolved stamp, got %q", out.Get("Search Method"))
	}
	if _, ok := out["Payer ID"]; ok {
		t.Fatal("unresolved row must not gain master columns")
	}
}
