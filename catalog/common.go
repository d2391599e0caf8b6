package catalog

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
var ErrBuildingQueryFailed = errors.New("building sql query failed")
var ErrQueryingBooksFailed = errors.New("querying books failed")
var ErrQueryingSuggestionsFailed = errors.New("querying suggestions failed")
var ErrQueryingCategoriesFailed = errors.New("querying categories failed")
var ErrQueryingLanguagesFailed = errors.New("querying languages failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrRecordingSearchFailed = errors.New("recording search history failed")
var ErrQueryingHistoryFailed = errors.New("querying search history failed")
var ErrMarshalingSearchParamsFailed = errors.New("marshaling search params failed")
