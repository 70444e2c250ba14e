// Package enrich projects matched master registry fields onto target rows
// and stamps match provenance.
//
// Enrichment is schema-driven: master columns absent from the target's
// column set are appended (target order first, then master order), and
// existing target columns are never overwritten. Every row, resolved or not,
// receives the "Payer Std?" and "Search Method" stamps, so one input row
// always produces exactly one output row.
package enrich
