// Package export serializes resolved result sets and history listings into
// downloadable artifacts.
//
// Two formats are supported: CSV (encoding/csv, standard quoting rules) and
// spreadsheet (a single-worksheet XLSX file built with excelize). Builders
// assemble the whole artifact in memory and return it only on success, so a
// serialization failure never hands a truncated file to the caller.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/acervolib/catalog-query-go/catalog"
)

var ErrUnknownFormat = errors.New("unknown export format")
var ErrWritingExportFailed = errors.New("writing export artifact failed")

// Format identifies an export serialization format.
type Format string

const (
	// FormatNone means no export was requested.
	FormatNone Format = ""

	// FormatCSV is comma-separated values with standard quoting.
	FormatCSV Format = "csv"

	// FormatSpreadsheet is a single-worksheet XLSX file.
	FormatSpreadsheet Format = "spreadsheet"
)

// ParseFormat maps a raw export parameter to a Format. "xlsx" is accepted as
// an alias for the spreadsheet format. Unknown or absent values yield
// FormatNone, which callers treat as "no export requested" per the permissive
// parsing policy.
func ParseFormat(raw string) Format {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(FormatCSV):
		return FormatCSV
	case string(FormatSpreadsheet), "xlsx":
		return FormatSpreadsheet
	default:
		return FormatNone
	}
}

// ContentType returns the transport content label for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatSpreadsheet:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return ""
	}
}

// Filename returns the suggested download filename for the given base name.
func (f Format) Filename(base string) string {
	switch f {
	case FormatCSV:
		return base + ".csv"
	case FormatSpreadsheet:
		return base + ".xlsx"
	default:
		return base
	}
}

// Artifact is one complete export: the serialized bytes together with the
// content label and suggested filename the transport layer should use.
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string
}

const (
	booksFileBase   = "books"
	historyFileBase = "search_history"

	booksSheetName   = "Books"
	historySheetName = "Searches"

	historyTimeLayout = "2006-01-02 15:04"
)

var booksHeader = []string{"Title", "Author", "Code", "Category", "Language", "Year", "Available"}
var historyHeader = []string{"Time", "Term", "Params"}

// Books serializes a resolved result set. An empty set yields a header-only
// artifact, not an error.
func Books(books catalog.Books, format Format) (Artifact, error) {
	switch format {
	case FormatCSV:
		return buildCSV(booksFileBase, booksHeader, booksCSVRows(books))
	case FormatSpreadsheet:
		return buildSpreadsheet(booksFileBase, booksSheetName, booksHeader, booksSheetRows(books))
	default:
		return Artifact{}, ErrUnknownFormat
	}
}

// History serializes a history listing in the order given (callers pass it
// newest first).
func History(records []catalog.SearchQueryRecord, format Format) (Artifact, error) {
	switch format {
	case FormatCSV:
		return buildCSV(historyFileBase, historyHeader, historyCSVRows(records))
	case FormatSpreadsheet:
		return buildSpreadsheet(historyFileBase, historySheetName, historyHeader, historySheetRows(records))
	default:
		return Artifact{}, ErrUnknownFormat
	}
}

func booksCSVRows(books catalog.Books) [][]string {
	rows := make([][]string, 0, len(books))

	for _, book := range books {
		year := ""
		if book.EditionYear != 0 {
			year = strconv.Itoa(book.EditionYear)
		}

		rows = append(rows, []string{
			book.Title,
			book.Author,
			book.Code,
			book.CategoryName,
			book.Language,
			year,
			strconv.Itoa(book.Available()),
		})
	}

	return rows
}

// booksSheetRows keeps numeric fields as numbers so the spreadsheet cells are
// typed accordingly. A missing edition year becomes an empty cell.
func booksSheetRows(books catalog.Books) [][]any {
	rows := make([][]any, 0, len(books))

	for _, book := range books {
		var year any = ""
		if book.EditionYear != 0 {
			year = book.EditionYear
		}

		rows = append(rows, []any{
			book.Title,
			book.Author,
			book.Code,
			book.CategoryName,
			book.Language,
			year,
			book.Available(),
		})
	}

	return rows
}

func historyCSVRows(records []catalog.SearchQueryRecord) [][]string {
	rows := make([][]string, 0, len(records))

	for _, record := range records {
		rows = append(rows, []string{
			record.CreatedAt.Format(historyTimeLayout),
			record.Term,
			string(record.ParamsJSON),
		})
	}

	return rows
}

// historySheetRows passes the timestamp through as time.Time so the
// spreadsheet cell is date-typed.
func historySheetRows(records []catalog.SearchQueryRecord) [][]any {
	rows := make([][]any, 0, len(records))

	for _, record := range records {
		rows = append(rows, []any{
			record.CreatedAt,
			record.Term,
			string(record.ParamsJSON),
		})
	}

	return rows
}

func buildCSV(fileBase string, header []string, rows [][]string) (Artifact, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	if writeErr := writer.Write(header); writeErr != nil {
		return Artifact{}, errors.Join(ErrWritingExportFailed, writeErr)
	}

	for _, row := range rows {
		if writeErr := writer.Write(row); writeErr != nil {
			return Artifact{}, errors.Join(ErrWritingExportFailed, writeErr)
		}
	}

	writer.Flush()

	if flushErr := writer.Error(); flushErr != nil {
		return Artifact{}, errors.Join(ErrWritingExportFailed, flushErr)
	}

	return Artifact{
		Data:        buffer.Bytes(),
		ContentType: FormatCSV.ContentType(),
		Filename:    FormatCSV.Filename(fileBase),
	}, nil
}

func buildSpreadsheet(fileBase string, sheetName string, header []string, rows [][]any) (Artifact, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if renameErr := file.SetSheetName(file.GetSheetName(0), sheetName); renameErr != nil {
		return Artifact{}, errors.Join(ErrWritingExportFailed, renameErr)
	}

	headerRow := make([]any, 0, len(header))
	for _, column := range header {
		headerRow = append(headerRow, column)
	}

	if writeErr := writeSheetRow(file, sheetName, 1, headerRow); writeErr != nil {
		return Artifact{}, errors.Join(ErrWritingExportFailed, writeErr)
	}

	for i, row := range rows {
		if writeErr := writeSheetRow(file, sheetName, i+2, row); writeErr != nil {
			return Artifact{}, errors.Join(ErrWritingExportFailed, writeErr)
		}
	}

	buffer, writeErr := file.WriteToBuffer()
	if writeErr != nil {
		return Artifact{}, errors.Join(ErrWritingExportFailed, writeErr)
	}

	return Artifact{
		Data:        buffer.Bytes(),
		ContentType: FormatSpreadsheet.ContentType(),
		Filename:    FormatSpreadsheet.Filename(fileBase),
	}, nil
}

func writeSheetRow(file *excelize.File, sheetName string, rowNumber int, values []any) error {
	cell, coordErr := excelize.CoordinatesToCellName(1, rowNumber)
	if coordErr != nil {
		return coordErr
	}

	return file.SetSheetRow(sheetName, cell, &values)
}
