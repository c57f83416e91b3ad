// Package refindex builds the read-only lookup structures the matcher queries:
// an exact map on normalized trackings, a leading-zero-stripped variant map,
// and a flat ordered list for linear fuzzy scans.
package refindex

import (
	"strings"

	"labelsort/internal/models"
)

// Entry pairs a normalized tracking with its reference record, preserving
// reference-list order for deterministic scans.
type Entry struct {
	Tracking string
	Record   *models.ReferenceRecord
}

// Index holds the lookup structures. It is never mutated after Build.
type Index struct {
	exact    map[string]*models.ReferenceRecord
	stripped map[string]*models.ReferenceRecord
	entries  []Entry
}

// Build constructs an index from the reference records. Duplicate trackings
// resolve last-write-wins: the later row replaces the earlier one in the maps,
// matching how re-exported order lists override earlier rows.
func Build(records []models.ReferenceRecord) *Index {
	idx := &Index{
		exact:    make(map[string]*models.ReferenceRecord, len(records)),
		stripped: make(map[string]*models.ReferenceRecord, len(records)),
		entries:  make([]Entry, 0, len(records)),
	}

	for i := range records {
		rec := &records[i]
		tracking := models.NormalizeTracking(rec.Tracking)
		if tracking == "" {
			continue
		}

		idx.exact[tracking] = rec

		if zs := strings.TrimLeft(tracking, "0"); zs != "" && zs != tracking {
			idx.stripped[zs] = rec
		}

		idx.entries = append(idx.entries, Entry{Tracking: tracking, Record: rec})
	}

	return idx
}

// Exact returns the record whose normalized tracking equals the query.
func (idx *Index) Exact(tracking string) (*models.ReferenceRecord, bool) {
	rec, ok := idx.exact[tracking]
	return rec, ok
}

// Stripped returns the record whose leading-zero-stripped tracking equals the
// leading-zero-stripped query.
func (idx *Index) Stripped(tracking string) (*models.ReferenceRecord, bool) {
	zs := strings.TrimLeft(tracking, "0")
	if zs == "" {
		return nil, false
	}
	if rec, ok := idx.exact[zs]; ok {
		return rec, ok
	}
	rec, ok := idx.stripped[zs]
	return rec, ok
}

// Entries returns the ordered (tracking, record) list for linear scanning.
// Callers must not modify the returned slice.
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.entries)
}
