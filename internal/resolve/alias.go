package resolve

import (
	"strings"

	"scrubber/internal/normalize"
	"scrubber/internal/tabular"
)

// nameColumn reports whether a header names a payer-name-bearing column.
func nameColumn(header string) bool {
	return strings.Contains(strings.ToUpper(header), "NAME")
}

// aliases collects the candidate name aliases of a target row: every
// name-bearing column in schema order, cells split on commas, each piece
// normalized, empties dropped, duplicates removed preserving first-seen
// order. channelColumn is the column already consumed as the channel signal
// and never contributes aliases even when its header looks name-like
// ("CH Names").
func aliases(columns []string, row tabular.Row, channelColumn string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, column := range columns {
		if column == channelColumn || !nameColumn(column) {
			continue
		}
		for _, piece := range strings.Split(row.Get(column), ",") {
			key := normalize.Key(piece)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

// channelColumn returns the first column from the priority list present in
// the target schema, or "" when none is.
func channelColumn(columns []string, priority []string) string {
	present := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		present[column] = struct{}{}
	}
	for _, candidate := range priority {
		if _, ok := present[candidate]; ok {
			return candidate
		}
	}
	return ""
}
