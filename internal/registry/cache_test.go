package registry_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scrubber/internal/logging"
	"scrubber/internal/registry"
	"scrubber/internal/tabular"
)

func TestCacheGetOrBuild(t *testing.T) {
	cache := registry.NewCache(logging.NewNop())
	builds := 0
	build := func() (*registry.Index, error) {
		builds++
		return registry.Build(masterTable(), "Payer ID", logging.NewNop()), nil
	}

	first, reused, err := cache.GetOrBuild("fp-1", build)
	if err != nil || reused {
		t.Fatalf("first build: reused=%v err=%v", reused, err)
	}
	second, reused, err := cache.GetOrBuild("fp-1", build)
	if err != nil || !reused {
		t.Fatalf("second build: reused=%v err=%v", reused, err)
	}
	if first != second {
		t.Fatal("expected the identical cached index")
	}
	if builds != 1 {
		t.Fatalf("expected 1 build, got %d", builds)
	}

	cache.Invalidate("fp-1")
	if _, reused, _ := cache.GetOrBuild("fp-1", build); reused {
		t.Fatal("expected rebuild after invalidation")
	}
	if builds != 2 {
		t.Fatalf("expected 2 builds after invalidation, got %d", builds)
	}
}

func TestCacheBuildErrorNotCached(t *testing.T) {
	cache := registry.NewCache(logging.NewNop())
	wantErr := errors.New("boom")
	if _, _, err := cache.GetOrBuild("fp", func() (*registry.Index, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected build error, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatal("failed builds must not be cached")
	}
}

func TestFingerprintDistinguishesContent(t *testing.T) {
	a := registry.Fingerprint([]byte("one"))
	b := registry.Fingerprint([]byte("two"))
	if a == b {
		t.Fatal("expected distinct fingerprints for distinct content")
	}
	if a != registry.Fingerprint([]byte("one")) {
		t.Fatal("expected stable fingerprint for identical content")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "master.csv")
	table := tabular.New("Payer ID", "Payer Name", "Source_File")
	table.Append(tabular.Row{"Payer ID": "7077", "Payer Name": "Triwest", "Source_File": "Availity"})
	if err := tabular.WriteFile(path, table); err != nil {
		t.Fatalf("write master: %v", err)
	}

	idx, fingerprint, err := registry.LoadFile(path, "Payer ID", logging.NewNop())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if fingerprint == "" {
		t.Fatal("expected non-empty fingerprint")
	}
	if _, ok := idx.LookupID("07077"); !ok {
		t.Fatal("expected loaded registry to resolve standardized id")
	}
}

func TestLoadFileMissingRegistryIsFatal(t *testing.T) {
	_, _, err := registry.LoadFile(filepath.Join(t.TempDir(), "absent.csv"), "Payer ID", logging.NewNop())
	if err == nil {
		t.Fatal("expected error for missing registry")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}
