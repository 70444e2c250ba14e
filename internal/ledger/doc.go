// Package ledger persists per-file batch outcomes in SQLite.
//
// One row is written per processed target file: run id, file, output path,
// status, row/match counts, and the error message for failures. The ledger
// is transient operational bookkeeping; registry data and matching state
// never touch it, and the whole feature can be disabled in configuration.
// Users may delete the database at any time; it is recreated on open.
package ledger
