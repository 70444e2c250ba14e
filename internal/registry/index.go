package registry

import (
	"log/slog"

	"scrubber/internal/logging"
	"scrubber/internal/normalize"
	"scrubber/internal/tabular"
)

// Well-known registry column names.
const (
	ColumnPayerID        = "Payer ID"
	ColumnPayerName      = "Payer Name"
	ColumnCleanPayerName = "Clean_payer Name"
	ColumnSourceFile     = "Source_File"
)

type tripleKey struct {
	id      string
	name    string
	channel string
}

type pairKey struct {
	left  string
	right string
}

// Entry pairs a normalized master name with its record, in registry order.
type Entry struct {
	Name   string
	Record tabular.Row
}

// Stats summarizes table sizes after a build.
type Stats struct {
	Records     int
	Full        int
	IDName      int
	NameChannel int
	IDChannel   int
	IDOnly      int
	NameOnly    int
	NameList    int
}

// Index is the read-only tiered lookup structure over the master registry.
type Index struct {
	columns     []string
	full        map[tripleKey]tabular.Row
	idName      map[pairKey]tabular.Row
	nameChannel map[pairKey]tabular.Row
	idChannel   map[pairKey]tabular.Row
	idOnly      map[string]tabular.Row
	nameOnly    map[string]tabular.Row
	nameList    []Entry
	stats       Stats
}

// Build constructs an Index from the registry table. idColumn names the
// identifier column (normally "Payer ID"). Rows missing a column contribute
// an empty value for it; each exact table only accepts keys whose parts are
// all non-empty, and the first record registered for a key wins.
func Build(table *tabular.Table, idColumn string, logger *slog.Logger) *Index {
	log := logging.NewComponentLogger(logger, "registry")
	if idColumn == "" {
		idColumn = ColumnPayerID
	}

	idx := &Index{
		columns:     append([]string(nil), table.Columns...),
		full:        make(map[tripleKey]tabular.Row, table.Len()),
		idName:      make(map[pairKey]tabular.Row, table.Len()),
		nameChannel: make(map[pairKey]tabular.Row, table.Len()),
		idChannel:   make(map[pairKey]tabular.Row, table.Len()),
		idOnly:      make(map[string]tabular.Row, table.Len()),
		nameOnly:    make(map[string]tabular.Row, table.Len()),
		nameList:    make([]Entry, 0, table.Len()),
	}

	for _, row := range table.Rows {
		id := normalize.StandardizeID(row.Get(idColumn))
		rawName := row.Get(ColumnCleanPayerName)
		if rawName == "" {
			rawName = row.Get(ColumnPayerName)
		}
		name := normalize.Key(rawName)
		channel := normalize.Channel(row.Get(ColumnSourceFile))

		if id != "" && name != "" && channel != "" {
			insertTriple(idx.full, tripleKey{id, name, channel}, row)
		}
		if id != "" && name != "" {
			insertPair(idx.idName, pairKey{id, name}, row)
		}
		if name != "" && channel != "" {
			insertPair(idx.nameChannel, pairKey{name, channel}, row)
		}
		if id != "" && channel != "" {
			insertPair(idx.idChannel, pairKey{id, channel}, row)
		}
		if id != "" {
			insertSingle(idx.idOnly, id, row)
		}
		if name != "" {
			insertSingle(idx.nameOnly, name, row)
			// Every named record scans, duplicates included.
			idx.nameList = append(idx.nameList, Entry{Name: name, Record: row})
		}
	}

	idx.stats = Stats{
		Records:     table.Len(),
		Full:        len(idx.full),
		IDName:      len(idx.idName),
		NameChannel: len(idx.nameChannel),
		IDChannel:   len(idx.idChannel),
		IDOnly:      len(idx.idOnly),
		NameOnly:    len(idx.nameOnly),
		NameList:    len(idx.nameList),
	}
	log.Info("master index built",
		logging.Int("records", idx.stats.Records),
		logging.Int("id_keys", idx.stats.IDOnly),
		logging.Int("name_keys", idx.stats.NameOnly),
	)
	return idx
}

// First occurrence wins; later duplicates for a key are dropped.
func insertTriple(m map[tripleKey]tabular.Row, key tripleKey, row tabular.Row) {
	if _, exists := m[key]; !exists {
		m[key] = row
	}
}

func insertPair(m map[pairKey]tabular.Row, key pairKey, row tabular.Row) {
	if _, exists := m[key]; !exists {
		m[key] = row
	}
}

func insertSingle(m map[string]tabular.Row, key string, row tabular.Row) {
	if _, exists := m[key]; !exists {
		m[key] = row
	}
}

// Columns returns the registry schema in original order.
func (i *Index) Columns() []string {
	return i.columns
}

// Stats returns table sizes recorded at build time.
func (i *Index) Stats() Stats {
	return i.stats
}

// LookupFull resolves the (id, name, channel) composite key.
func (i *Index) LookupFull(id, name, channel string) (tabular.Row, bool) {
	row, ok := i.full[tripleKey{id, name, channel}]
	return row, ok
}

// LookupIDName resolves the (id, name) composite key.
func (i *Index) LookupIDName(id, name string) (tabular.Row, bool) {
	row, ok := i.idName[pairKey{id, name}]
	return row, ok
}

// LookupNameChannel resolves the (name, channel) composite key.
func (i *Index) LookupNameChannel(name, channel string) (tabular.Row, bool) {
	row, ok := i.nameChannel[pairKey{name, channel}]
	return row, ok
}

// LookupIDChannel resolves the (id, channel) composite key.
func (i *Index) LookupIDChannel(id, channel string) (tabular.Row, bool) {
	row, ok := i.idChannel[pairKey{id, channel}]
	return row, ok
}

// LookupID resolves a standardized identifier alone.
func (i *Index) LookupID(id string) (tabular.Row, bool) {
	row, ok := i.idOnly[id]
	return row, ok
}

// LookupName resolves a normalized name alone.
func (i *Index) LookupName(name string) (tabular.Row, bool) {
	row, ok := i.nameOnly[name]
	return row, ok
}

// NameEntries returns the ordered (name, record) sequence for substring
// scanning. Callers must not mutate it.
func (i *Index) NameEntries() []Entry {
	return i.nameList
}
