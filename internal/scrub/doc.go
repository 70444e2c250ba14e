// Package scrub drives the per-file batch workflow: load the registry index
// once, then run each target file through resolve and enrich and write the
// enriched output.
//
// Each target file is an independent unit of work. A parse or write failure
// in one file is reported against that file only and never aborts the rest
// of the batch. Files may be processed by a bounded set of workers since the
// index is immutable; rows within a file are processed strictly in input
// order so output row order stays deterministic. Every batch carries a UUID
// run identifier that tags log records and ledger entries.
package scrub
