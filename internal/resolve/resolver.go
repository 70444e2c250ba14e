package resolve

import (
	"strings"

	"scrubber/internal/normalize"
	"scrubber/internal/registry"
	"scrubber/internal/tabular"
)

// Options configures a Resolver.
type Options struct {
	// IDColumn names the identifier column in target files.
	IDColumn string
	// ChannelColumns is the priority list for the channel signal.
	ChannelColumns []string
	// MinPartialAliasLength is the shortest alias eligible for containment
	// matching; shorter aliases ("HMO") are noise.
	MinPartialAliasLength int
	// ChannelTiers enables the channel-aware composite tiers.
	ChannelTiers bool
	// PartialMatchTier enables the containment fallback.
	PartialMatchTier bool
}

// DefaultOptions mirrors the repository configuration defaults.
func DefaultOptions() Options {
	return Options{
		IDColumn:              registry.ColumnPayerID,
		ChannelColumns:        []string{"Clearinghouse ID", "CH Names", "Source_File"},
		MinPartialAliasLength: 4,
		ChannelTiers:          true,
		PartialMatchTier:      true,
	}
}

// Resolver walks the index tiers for target rows. It holds no mutable
// state: resolving is a pure function of (row, index, options).
type Resolver struct {
	idx  *registry.Index
	opts Options
}

// New constructs a Resolver over a built index.
func New(idx *registry.Index, opts Options) *Resolver {
	if opts.IDColumn == "" {
		opts.IDColumn = registry.ColumnPayerID
	}
	if opts.MinPartialAliasLength <= 0 {
		opts.MinPartialAliasLength = 4
	}
	return &Resolver{idx: idx, opts: opts}
}

// Resolve finds the best master match for one target row. columns is the
// target table's schema in order; it determines which columns contribute
// aliases and which supplies the channel, and keeps alias order
// deterministic.
func (r *Resolver) Resolve(columns []string, row tabular.Row) Match {
	id := normalize.StandardizeID(row.Get(r.opts.IDColumn))
	chCol := channelColumn(columns, r.opts.ChannelColumns)
	channel := ""
	if chCol != "" {
		channel = normalize.Channel(row.Get(chCol))
	}
	names := aliases(columns, row, chCol)

	// Tier 1: full composite.
	if r.opts.ChannelTiers && id != "" && channel != "" {
		for _, alias := range names {
			if rec, ok := r.idx.LookupFull(id, alias, channel); ok {
				return Match{Record: rec, Tier: TierFull, Alias: alias}
			}
		}
	}

	// Tier 2: double composites in fixed order.
	if id != "" {
		for _, alias := range names {
			if rec, ok := r.idx.LookupIDName(id, alias); ok {
				return Match{Record: rec, Tier: TierIDName, Alias: alias}
			}
		}
	}
	if r.opts.ChannelTiers && channel != "" {
		for _, alias := range names {
			if rec, ok := r.idx.LookupNameChannel(alias, channel); ok {
				return Match{Record: rec, Tier: TierNameChannel, Alias: alias}
			}
		}
		if id != "" {
			if rec, ok := r.idx.LookupIDChannel(id, channel); ok {
				return Match{Record: rec, Tier: TierIDChannel}
			}
		}
	}

	// Tier 3: single factors, identifier before names.
	if id != "" {
		if rec, ok := r.idx.LookupID(id); ok {
			return Match{Record: rec, Tier: TierIDOnly}
		}
	}
	for _, alias := range names {
		if rec, ok := r.idx.LookupName(alias); ok {
			return Match{Record: rec, Tier: TierNameOnly, Alias: alias}
		}
	}

	// Tier 4: substring containment, last resort.
	if r.opts.PartialMatchTier {
		if m, ok := r.partialMatch(names); ok {
			return m
		}
	}

	return Match{Tier: TierNone}
}

// partialMatch scans the ordered name list for the first containment hit:
// aliases in alias-set order, master records in registry order.
func (r *Resolver) partialMatch(names []string) (Match, bool) {
	for _, alias := range names {
		if len(alias) < r.opts.MinPartialAliasLength {
			continue
		}
		for _, entry := range r.idx.NameEntries() {
			if strings.Contains(entry.Name, alias) {
				return Match{
					Record:        entry.Record,
					Tier:          TierPartial,
					Alias:         alias,
					MasterName:    entry.Name,
					AliasInMaster: true,
				}, true
			}
			if strings.Contains(alias, entry.Name) {
				return Match{
					Record:     entry.Record,
					Tier:       TierPartial,
					Alias:      alias,
					MasterName: entry.Name,
				}, true
			}
		}
	}
	return Match{}, false
}
