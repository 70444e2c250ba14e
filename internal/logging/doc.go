// Package logging wraps log/slog with the attribute helpers and handlers the
// rest of the codebase uses.
//
// Two output formats are supported: "console", a compact key=value line with
// the component name folded into the message prefix, and "json" for log
// aggregation. Output goes to stdout plus an optional log file; writers are
// deduplicated. NewNop returns a logger that discards everything, which is
// what tests and optional collaborators should hold instead of nil.
//
// Attach a component attribute via NewComponentLogger so console output stays
// scannable across the registry, resolver, and batch subsystems.
package logging
