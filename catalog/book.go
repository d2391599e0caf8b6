package catalog

import (
	"time"
)

// Books is an alias type for a slice of Book.
type Books = []Book

// Book is one catalog record together with its derived loan count.
//
// ActiveLoans is always computed by the store at query time from the loans
// relation (outstanding loans referencing the record); it is never persisted,
// so it cannot go stale.
type Book struct {
	ID           int64
	Title        string
	Author       string
	Code         string
	CategoryID   int64
	CategoryName string
	Language     string
	Publisher    string
	EditionYear  int
	CopiesTotal  int
	ActiveLoans  int
}

// Available returns the number of copies currently available for lending.
// It never reports a negative count, even if the store holds more outstanding
// loans than owned copies.
func (b Book) Available() int {
	available := b.CopiesTotal - b.ActiveLoans
	if available < 0 {
		return 0
	}

	return available
}

// Category is a human-readable grouping of catalog records. Categories are
// maintained by an administrative collaborator; this module only reads them.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Loan is one lending of a Book to a borrower. A zero ReturnedAt means the
// loan is still outstanding. Loans are read-only from this module's
// perspective; they are the sole source of the derived ActiveLoans count.
type Loan struct {
	ID          int64
	BookID      int64
	BorrowerKey string
	BorrowedAt  time.Time
	ReturnedAt  time.Time
}

// Outstanding reports whether the loan has not been returned yet.
func (l Loan) Outstanding() bool {
	return l.ReturnedAt.IsZero()
}

// SearchResult is one resolved page of a search, or the full filtered set.
//
// TotalCount is always the size of the whole filtered set, computed before any
// slicing. Page is nil when the request asked for the entire set, signaling
// the caller to suppress pagination controls.
type SearchResult struct {
	Books      Books
	TotalCount int
	Page       *PageInfo
}
