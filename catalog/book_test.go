package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acervolib/catalog-query-go/catalog"
)

func Test_Book_Available(t *testing.T) {
	tests := []struct {
		name        string
		copiesTotal int
		activeLoans int
		expected    int
	}{
		{name: "all_copies_in", copiesTotal: 3, activeLoans: 0, expected: 3},
		{name: "some_copies_out", copiesTotal: 3, activeLoans: 2, expected: 1},
		{name: "every_copy_out", copiesTotal: 1, activeLoans: 1, expected: 0},
		{name: "overdrawn_floors_at_zero", copiesTotal: 1, activeLoans: 2, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			book := catalog.Book{CopiesTotal: tc.copiesTotal, ActiveLoans: tc.activeLoans}
			assert.Equal(t, tc.expected, book.Available())
		})
	}
}

func Test_Loan_Outstanding(t *testing.T) {
	outstanding := catalog.Loan{}
	assert.True(t, outstanding.Outstanding())
}
