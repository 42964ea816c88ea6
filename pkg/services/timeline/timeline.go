package timeline

import (
	"sort"
	"time"

	"github.com/de-tools/bp-atlas/pkg/models/domain"
	"github.com/de-tools/bp-atlas/pkg/services/extraction"
)

// Entry is a reading placed on the time axis.
type Entry struct {
	At      time.Time
	Reading domain.Reading
}

// Build orders readings chronologically. Readings whose time cell cannot be
// composed with their date are left out; the source order breaks ties.
// Exact duplicates are removed.
func Build(readings []domain.Reading) []Entry {
	entries := make([]Entry, 0, len(readings))
	for _, r := range readings {
		at, err := extraction.ComposeInstant(r.Date, r.Time)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{At: at, Reading: r})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})
	return Dedupe(entries)
}

// Dedupe drops entries equal to an earlier entry at the same instant. The
// same reading often shows up twice when report months overlap.
func Dedupe(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if isDuplicate(out, e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func isDuplicate(seen []Entry, e Entry) bool {
	for i := len(seen) - 1; i >= 0 && seen[i].At.Equal(e.At); i-- {
		if sameValues(seen[i].Reading, e.Reading) {
			return true
		}
	}
	return false
}

func sameValues(a, b domain.Reading) bool {
	return a.Systolic == b.Systolic &&
		a.Diastolic == b.Diastolic &&
		a.HeartRate == b.HeartRate
}
