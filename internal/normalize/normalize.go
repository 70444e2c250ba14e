package normalize

import "strings"

// Key strips every character that is not an ASCII letter or digit and
// lowercases the remainder. Idempotent; empty input yields "".
func Key(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StandardizeID canonicalizes a free-text payer identifier. The value is
// trimmed, truncated at the first '.' (drops spreadsheet decimal suffixes
// such as "1111.0") and then at the first '-' (drops variant suffixes such
// as "37077-NOCD"). All-digit remnants shorter than five characters are
// left-padded with zeros to exactly five; everything else passes through
// verbatim.
func StandardizeID(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	base, _, _ := strings.Cut(trimmed, ".")
	base, _, _ = strings.Cut(base, "-")
	if len(base) < 5 && isDigits(base) {
		return strings.Repeat("0", 5-len(base)) + base
	}
	return base
}

// Channel canonicalizes a clearinghouse/source value for tier keys.
func Channel(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
