// Package resolve implements the tiered identity resolution walk over the
// master index.
//
// Each target row yields a standardized identifier, a channel (first present
// column from a configured priority list), and a set of name aliases (every
// name-bearing column, cells split on commas, normalized, deduplicated).
// Tiers are tried strictly in order of decreasing specificity: the full
// id+name+channel composite, the double composites, single factors, then
// substring containment. The first hit wins with no backtracking.
// Substring containment is the most error-prone signal, so it runs last and
// ignores aliases shorter than the configured floor.
//
// The channel-aware tiers and the containment fallback are configuration
// flags; disabling them yields the simplified identifier/name-only engine
// variant. A Resolver is a pure reader of the immutable index: the
// containment scan is linear over the registry per unresolved row, which is
// fine at current registry sizes; an inverted name index would be the next
// step if that ever dominates.
package resolve
