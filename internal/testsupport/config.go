package testsupport

import (
	"path/filepath"
	"testing"

	"scrubber/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t         testing.TB
	baseDir   string
	cfg       *config.Config
	masterCSV string
}

// NewConfig produces a config seeded with unique temp directories per test
// and a small master registry written to disk. It defaults common fields and
// applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MasterFile = filepath.Join(base, "master.csv")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:         t,
		baseDir:   base,
		cfg:       &cfgVal,
		masterCSV: MasterCSV,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	WriteCSV(t, builder.cfg.Paths.MasterFile, builder.masterCSV)

	return builder.cfg
}

// WithMasterCSV replaces the master registry content written for the test.
func WithMasterCSV(content string) ConfigOption {
	return func(b *configBuilder) {
		b.masterCSV = content
	}
}

// WithWorkers sets the batch worker count on the test config.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scrub.Workers = workers
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
