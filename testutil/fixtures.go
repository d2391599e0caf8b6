// Package testutil provides shared fixtures and fakes for catalog tests.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/acervolib/catalog-query-go/catalog"
)

// FixtureBooks returns a small, stable catalog covering the interesting
// availability cases: fully available titles, a partially lent title, and a
// title with every copy out.
func FixtureBooks() catalog.Books {
	return catalog.Books{
		{
			ID:           1,
			Title:        "Dom Casmurro",
			Author:       "Machado de Assis",
			Code:         "LIT-001",
			CategoryID:   1,
			CategoryName: "Literature",
			Language:     "portuguese",
			Publisher:    "Garnier",
			EditionYear:  1899,
			CopiesTotal:  2,
			ActiveLoans:  1,
		},
		{
			ID:           2,
			Title:        "Python Basics",
			Author:       "A. Dev",
			Code:         "TEC-014",
			CategoryID:   2,
			CategoryName: "Technology",
			Language:     "english",
			Publisher:    "Tech Press",
			EditionYear:  2019,
			CopiesTotal:  1,
			ActiveLoans:  1,
		},
		{
			ID:           3,
			Title:        "O Cortiço",
			Author:       "Aluísio Azevedo",
			Code:         "LIT-002",
			CategoryID:   1,
			CategoryName: "Literature",
			Language:     "portuguese",
			Publisher:    "Garnier",
			EditionYear:  1890,
			CopiesTotal:  3,
			ActiveLoans:  0,
		},
		{
			ID:           4,
			Title:        "Practical Databases",
			Author:       "B. Engineer",
			Code:         "TEC-021",
			CategoryID:   2,
			CategoryName: "Technology",
			Language:     "english",
			Publisher:    "Tech Press",
			EditionYear:  2021,
			CopiesTotal:  5,
			ActiveLoans:  2,
		},
	}
}

// FixtureHistory returns history records for one owner, newest first, the
// order a store listing returns them in.
func FixtureHistory(ownerKey string) []catalog.SearchQueryRecord {
	base := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

	return []catalog.SearchQueryRecord{
		{
			ID:         uuid.MustParse("0b8f27de-63c3-47e8-9fbb-1a2b3c4d5e6f"),
			OwnerKey:   ownerKey,
			Term:       "machado",
			ParamsJSON: []byte(`{"sort":"title"}`),
			CreatedAt:  base.Add(time.Hour),
		},
		{
			ID:         uuid.MustParse("4f1f58c0-9a6d-4a52-8f1e-aabbccddeeff"),
			OwnerKey:   ownerKey,
			Term:       "",
			ParamsJSON: []byte(`{"category":2,"sort":"availability"}`),
			CreatedAt:  base,
		},
	}
}
