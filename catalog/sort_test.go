package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acervolib/catalog-query-go/catalog"
)

func Test_ParseSortKey(t *testing.T) {
	tests := []struct {
		raw      string
		expected catalog.SortKey
	}{
		{raw: "title", expected: catalog.SortByTitle},
		{raw: "author", expected: catalog.SortByAuthor},
		{raw: "availability", expected: catalog.SortByAvailability},
		{raw: "  author  ", expected: catalog.SortByAuthor},
		{raw: "", expected: catalog.SortByTitle},
		{raw: "publisher", expected: catalog.SortByTitle},
		{raw: "TITLE", expected: catalog.SortByTitle},
	}

	for _, tc := range tests {
		t.Run("raw_"+tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, catalog.ParseSortKey(tc.raw))
		})
	}
}
