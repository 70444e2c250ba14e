package scrub

import (
	"time"

	"scrubber/internal/resolve"
)

// Summary aggregates match outcomes for one table pass.
type Summary struct {
	Rows       int
	Matched    int
	Unresolved int
	ByTier     map[resolve.Tier]int
}

func newSummary() Summary {
	return Summary{ByTier: make(map[resolve.Tier]int)}
}

func (s *Summary) record(match resolve.Match) {
	s.Rows++
	if match.Resolved() {
		s.Matched++
	} else {
		s.Unresolved++
	}
	s.ByTier[match.Tier]++
}

// FileResult reports the outcome of processing one target file.
type FileResult struct {
	File       string
	OutputPath string
	Summary    Summary
	Warnings   int
	Duration   time.Duration
	// Err is the per-file failure, if any; other files are unaffected.
	Err error
}

// Failed reports whether this file's processing failed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// BatchResult reports the outcome of one batch run.
type BatchResult struct {
	RunID       string
	IndexReused bool
	Files       []FileResult
	FailedFiles int
}
