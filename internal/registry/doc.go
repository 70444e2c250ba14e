// Package registry builds the tiered lookup index over the canonical master
// payer registry.
//
// An Index is built once from an ordered registry table and is immutable
// afterward, so any number of resolution passes can read it concurrently.
// Six exact-key tables cover the composite tiers (id+name+channel down to
// name alone) with explicit first-occurrence-wins inserts. An ordered name
// list backs the substring containment tier; unlike the exact tables it
// keeps every record, duplicates included.
//
// Cache memoizes built indexes by registry snapshot fingerprint (SHA-256 of
// the file bytes) with an explicit build/reuse/invalidate lifecycle, since
// building is the expensive step and one registry serves many target files.
package registry
