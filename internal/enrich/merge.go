package enrich

import (
	"scrubber/internal/normalize"
	"scrubber/internal/resolve"
	"scrubber/internal/tabular"
)

// Provenance columns stamped onto every output row. The engine owns these:
// a target file that already carries them gets them restamped.
const (
	ColumnStatus = "Payer Std?"
	ColumnMethod = "Search Method"
)

// Status values for ColumnStatus.
const (
	StatusMatched    = "Yes"
	StatusUnmatched  = "No"
	MethodUnresolved = "Unresolved"
)

// Merger enriches target rows with fields from a matched master record.
type Merger struct {
	masterColumns []string
	idColumn      string
}

// NewMerger builds a Merger for a registry schema. idColumn names the
// identifier column; its copied values are standardized on the way out.
func NewMerger(masterColumns []string, idColumn string) *Merger {
	return &Merger{
		masterColumns: append([]string(nil), masterColumns...),
		idColumn:      idColumn,
	}
}

// OutputColumns derives the deterministic output schema for a target
// schema: the target's columns in their original order, then master columns
// the target lacks in master order, then the provenance stamps.
func (m *Merger) OutputColumns(targetColumns []string) []string {
	out := append([]string(nil), targetColumns...)
	present := make(map[string]struct{}, len(targetColumns)+2)
	for _, column := range targetColumns {
		present[column] = struct{}{}
	}
	for _, column := range m.masterColumns {
		if _, ok := present[column]; ok {
			continue
		}
		present[column] = struct{}{}
		out = append(out, column)
	}
	for _, column := range []string{ColumnStatus, ColumnMethod} {
		if _, ok := present[column]; !ok {
			present[column] = struct{}{}
			out = append(out, column)
		}
	}
	return out
}

// Merge produces the enriched output row for one target row and its match.
// The input row is not mutated. Master values land only in columns absent
// from the target schema; the identifier column is standardized as it is
// copied, so a registry holding a raw "7077" fills in "07077". Unresolved
// rows gain no master columns, just the explicit unresolved stamps.
func (m *Merger) Merge(targetColumns []string, row tabular.Row, match resolve.Match) tabular.Row {
	out := row.Clone()
	if match.Resolved() {
		targetSet := make(map[string]struct{}, len(targetColumns))
		for _, column := range targetColumns {
			targetSet[column] = struct{}{}
		}
		for _, column := range m.masterColumns {
			if _, exists := targetSet[column]; exists {
				continue
			}
			value := match.Record.Get(column)
			if column == m.idColumn {
				value = normalize.StandardizeID(value)
			}
			out[column] = value
		}
		out[ColumnStatus] = StatusMatched
		out[ColumnMethod] = match.Method()
		return out
	}
	out[ColumnStatus] = StatusUnmatched
	out[ColumnMethod] = MethodUnresolved
	return out
}
