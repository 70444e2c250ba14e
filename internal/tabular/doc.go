// Package tabular supplies the in-memory table model the engine operates on
// and the CSV boundary that produces it.
//
// A Table is an ordered column list plus rows of string cells; reading a
// column a row lacks yields the empty string, so downstream code never has
// to distinguish missing from blank. The CSV reader tolerates what payer
// exports actually contain: byte order marks, Latin-1 encoded files, ragged
// rows (padded or truncated with a per-row warning), and loosely quoted
// fields.
package tabular
