package catalog

import (
	"strings"
)

// SortKey selects the ordering of a resolved result set.
type SortKey string

const (
	// SortByTitle orders by case-normalized title, ascending. This is the default.
	SortByTitle SortKey = "title"

	// SortByAuthor orders by case-normalized author, ascending.
	SortByAuthor SortKey = "author"

	// SortByAvailability orders by computed available copies, most-available first.
	SortByAvailability SortKey = "availability"
)

// ParseSortKey maps a raw sort parameter to a SortKey.
// Unrecognized or absent values default to SortByTitle.
// Every ordering is made deterministic by a secondary record-id tie-break,
// applied by the store engine, so page boundaries are stable across requests.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.TrimSpace(raw)) {
	case SortByAuthor:
		return SortByAuthor
	case SortByAvailability:
		return SortByAvailability
	default:
		return SortByTitle
	}
}
