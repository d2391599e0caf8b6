package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/acervolib/catalog-query-go/catalog"
	"github.com/acervolib/catalog-query-go/export"
	"github.com/acervolib/catalog-query-go/testutil"
)

func Test_ParseFormat(t *testing.T) {
	tests := []struct {
		raw      string
		expected export.Format
	}{
		{raw: "csv", expected: export.FormatCSV},
		{raw: "spreadsheet", expected: export.FormatSpreadsheet},
		{raw: "xlsx", expected: export.FormatSpreadsheet},
		{raw: " CSV ", expected: export.FormatCSV},
		{raw: "", expected: export.FormatNone},
		{raw: "pdf", expected: export.FormatNone},
	}

	for _, tc := range tests {
		t.Run("raw_"+tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.expected, export.ParseFormat(tc.raw))
		})
	}
}

func Test_Books_CSV(t *testing.T) {
	books := catalog.Books{
		{
			Title:        `Dom "Casmurro"`,
			Author:       "Machado, de Assis",
			Code:         "LIT-001",
			CategoryName: "Literature",
			Language:     "portuguese",
			EditionYear:  1899,
			CopiesTotal:  2,
			ActiveLoans:  1,
		},
		{
			Title:       "Untitled Draft",
			Author:      "Anonymous",
			Code:        "DRF-001",
			CopiesTotal: 1,
		},
	}

	artifact, err := export.Books(books, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "books.csv", artifact.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", artifact.ContentType)

	expected := "Title,Author,Code,Category,Language,Year,Available\n" +
		"\"Dom \"\"Casmurro\"\"\",\"Machado, de Assis\",LIT-001,Literature,portuguese,1899,1\n" +
		"Untitled Draft,Anonymous,DRF-001,,,,1\n"
	assert.Equal(t, expected, string(artifact.Data))
}

func Test_Books_CSV_EmptySetYieldsHeaderOnly(t *testing.T) {
	artifact, err := export.Books(nil, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "Title,Author,Code,Category,Language,Year,Available\n", string(artifact.Data))
}

func Test_Books_Spreadsheet_RoundTrip(t *testing.T) {
	artifact, err := export.Books(testutil.FixtureBooks(), export.FormatSpreadsheet)
	require.NoError(t, err)

	assert.Equal(t, "books.xlsx", artifact.Filename)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		artifact.ContentType)

	file, openErr := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, openErr)
	defer func() { _ = file.Close() }()

	rows, rowsErr := file.GetRows("Books")
	require.NoError(t, rowsErr)
	require.Len(t, rows, len(testutil.FixtureBooks())+1)

	assert.Equal(t, []string{"Title", "Author", "Code", "Category", "Language", "Year", "Available"}, rows[0])
	assert.Equal(t, "Dom Casmurro", rows[1][0])
	assert.Equal(t, "1899", rows[1][5])
	assert.Equal(t, "1", rows[1][6])
}

func Test_Books_UnknownFormatFails(t *testing.T) {
	_, err := export.Books(testutil.FixtureBooks(), export.Format("pdf"))
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, noneErr := export.Books(testutil.FixtureBooks(), export.FormatNone)
	assert.ErrorIs(t, noneErr, export.ErrUnknownFormat)
}

func Test_History_CSV(t *testing.T) {
	records := []catalog.SearchQueryRecord{
		{
			Term:       "machado",
			ParamsJSON: []byte(`{"sort":"title"}`),
			CreatedAt:  time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC),
		},
	}

	artifact, err := export.History(records, export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "search_history.csv", artifact.Filename)

	expected := "Time,Term,Params\n" +
		"2026-03-10 14:30,machado,\"{\"\"sort\"\":\"\"title\"\"}\"\n"
	assert.Equal(t, expected, string(artifact.Data))
}

func Test_History_Spreadsheet_RoundTrip(t *testing.T) {
	records := testutil.FixtureHistory("user:42")

	artifact, err := export.History(records, export.FormatSpreadsheet)
	require.NoError(t, err)

	file, openErr := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, openErr)
	defer func() { _ = file.Close() }()

	rows, rowsErr := file.GetRows("Searches")
	require.NoError(t, rowsErr)
	require.Len(t, rows, len(records)+1)

	assert.Equal(t, []string{"Time", "Term", "Params"}, rows[0])
	assert.Equal(t, "machado", rows[1][1])
}
