package resolve

import (
	"fmt"

	"scrubber/internal/tabular"
)

// Tier identifies which search level produced a match.
type Tier int

const (
	TierNone Tier = iota
	TierFull
	TierIDName
	TierNameChannel
	TierIDChannel
	TierIDOnly
	TierNameOnly
	TierPartial
)

// String returns the human-readable tier label used in output stamps.
func (t Tier) String() string {
	switch t {
	case TierFull:
		return "Tier 1: ID+Name+CH"
	case TierIDName:
		return "Tier 2: ID+Name"
	case TierNameChannel:
		return "Tier 2: Name+CH"
	case TierIDChannel:
		return "Tier 2: ID+CH"
	case TierIDOnly:
		return "Tier 3: ID Only"
	case TierNameOnly:
		return "Tier 3: Name Only"
	case TierPartial:
		return "Partial"
	default:
		return "Unresolved"
	}
}

// Match is the outcome of resolving one target row. It is ephemeral:
// produced per row and consumed immediately by the merger.
type Match struct {
	// Record references the matched master row; nil when unresolved.
	Record tabular.Row
	Tier   Tier
	// Alias is the normalized alias that produced a name-driven hit.
	Alias string
	// MasterName is the normalized master name of a containment hit.
	MasterName string
	// AliasInMaster reports the containment direction for partial hits.
	AliasInMaster bool
}

// Resolved reports whether any tier matched.
func (m Match) Resolved() bool {
	return m.Tier != TierNone && m.Record != nil
}

// Method returns the search method label stamped onto output rows,
// including which alias and master name produced a containment hit.
func (m Match) Method() string {
	if m.Tier == TierPartial {
		if m.AliasInMaster {
			return fmt.Sprintf("Partial: '%s' in Master", m.Alias)
		}
		return fmt.Sprintf("Partial: Master '%s' in '%s'", m.MasterName, m.Alias)
	}
	return m.Tier.String()
}
