// Package normalize canonicalizes the free-text payer fields that feed the
// resolution tiers: names collapse to lowercase alphanumerics, identifiers
// lose decimal and hyphen suffixes and gain zero padding, channels are
// upper-trimmed. All three functions accept any input and never fail.
package normalize
