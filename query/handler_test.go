package query_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acervolib/catalog-query-go/catalog"
	"github.com/acervolib/catalog-query-go/export"
	"github.com/acervolib/catalog-query-go/query"
	"github.com/acervolib/catalog-query-go/testutil"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}

func newHandler(t *testing.T, store *testutil.FakeCatalogStore, options ...query.Option) query.Handler {
	t.Helper()

	handler, err := query.NewHandler(store, options...)
	require.NoError(t, err)

	return handler
}

func fixedResult() catalog.SearchResult {
	info := catalog.BuildPageInfo(len(testutil.FixtureBooks()), 1)

	return catalog.SearchResult{
		Books:      testutil.FixtureBooks(),
		TotalCount: len(testutil.FixtureBooks()),
		Page:       &info,
	}
}

func Test_NewHandler_RejectsNilStore(t *testing.T) {
	_, err := query.NewHandler(nil)
	assert.ErrorIs(t, err, query.ErrNilCatalogStoreSupplied)
}

func Test_Resolve_PageRequest(t *testing.T) {
	store := &testutil.FakeCatalogStore{Result: fixedResult()}
	handler := newHandler(t, store)

	params := url.Values{catalog.ParamTerm: {"machado"}}
	response, err := handler.Resolve(context.Background(), params, catalog.AuthenticatedUser("42"))
	require.NoError(t, err)

	assert.Equal(t, query.KindPage, response.Kind)
	assert.Equal(t, "machado", response.Filter.Term(), "the resolved filter is echoed back")
	assert.Equal(t, fixedResult().TotalCount, response.Result.TotalCount)

	require.Len(t, store.SearchSpecs, 1)
	assert.Equal(t, catalog.PageModeFixed, store.SearchSpecs[0].Page().Mode())
}

func Test_Resolve_RecordsHistoryOncePerSearch(t *testing.T) {
	store := &testutil.FakeCatalogStore{Result: fixedResult()}
	handler := newHandler(t, store, query.WithClock(func() time.Time {
		return time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
	}))

	params := url.Values{catalog.ParamTerm: {"machado"}}
	_, err := handler.Resolve(context.Background(), params, catalog.AuthenticatedUser("42"))
	require.NoError(t, err)

	require.Len(t, store.Recorded, 1)
	assert.Equal(t, "user:42", store.Recorded[0].OwnerKey)
	assert.Equal(t, "machado", store.Recorded[0].Term)
	assert.Equal(t, time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC), store.Recorded[0].CreatedAt)
}

func Test_Resolve_TrivialSearchIsNotRecorded(t *testing.T) {
	store := &testutil.FakeCatalogStore{Result: fixedResult()}
	handler := newHandler(t, store)

	_, err := handler.Resolve(context.Background(), url.Values{}, catalog.AuthenticatedUser("42"))
	require.NoError(t, err)

	assert.Empty(t, store.Recorded, "the bare landing view is not history-worthy")
}

func Test_Resolve_UnidentifiedCallerIsNotRecorded(t *testing.T) {
	store := &testutil.FakeCatalogStore{Result: fixedResult()}
	handler := newHandler(t, store)

	params := url.Values{catalog.ParamTerm: {"machado"}}

	_, err := handler.Resolve(context.Background(), params, catalog.Unidentified())
	require.NoError(t, err)

	_, nilErr := handler.Resolve(context.Background(), params, nil)
	require.NoError(t, nilErr)

	assert.Empty(t, store.Recorded)
}

func Test_Resolve_HistoryFailureDoesNotFailTheSearch(t *testing.T) {
	store := &testutil.FakeCatalogStore{
		Result:    fixedResult(),
		RecordErr: errors.New("history table gone"),
	}
	logger := &recordingLogger{}
	handler := newHandler(t, store, query.WithLogger(logger))

	params := url.Values{catalog.ParamTerm: {"machado"}}
	response, err := handler.Resolve(context.Background(), params, catalog.AuthenticatedUser("42"))

	require.NoError(t, err)
	assert.Equal(t, query.KindPage, response.Kind)
	assert.NotEmpty(t, logger.warnings, "the swallowed failure must leave a trace in the log")
}

func Test_Resolve_StoreFailurePropagates(t *testing.T) {
	storeErr := errors.Join(catalog.ErrQueryingBooksFailed, errors.New("connection refused"))
	store := &testutil.FakeCatalogStore{SearchErr: storeErr}
	handler := newHandler(t, store)

	_, err := handler.Resolve(context.Background(), url.Values{catalog.ParamTerm: {"machado"}}, catalog.Unidentified())

	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrQueryingBooksFailed)
	assert.Empty(t, store.Recorded, "a failed search is not recorded")
}

func Test_Resolve_SuggestRouting(t *testing.T) {
	store := &testutil.FakeCatalogStore{Suggestions: []string{"Machado de Assis"}}
	handler := newHandler(t, store)

	params := url.Values{
		catalog.ParamTerm:    {"ma"},
		catalog.ParamSuggest: {"1"},
	}

	response, err := handler.Resolve(context.Background(), params, catalog.AuthenticatedUser("42"))
	require.NoError(t, err)

	assert.Equal(t, query.KindSuggestions, response.Kind)
	assert.Equal(t, []string{"Machado de Assis"}, response.Suggestions)
	assert.Equal(t, []string{"ma"}, store.SuggestCalls)
	assert.Empty(t, store.SearchSpecs, "suggestion requests bypass the main pipeline")
	assert.Empty(t, store.Recorded, "suggestions are exploratory, never recorded")
}

func Test_Resolve_ExportRouting(t *testing.T) {
	store := &testutil.FakeCatalogStore{
		Result: catalog.SearchResult{
			Books:      testutil.FixtureBooks(),
			TotalCount: len(testutil.FixtureBooks()),
		},
	}
	handler := newHandler(t, store)

	params := url.Values{
		catalog.ParamTerm:   {"machado"},
		catalog.ParamExport: {"csv"},
	}

	response, err := handler.Resolve(context.Background(), params, catalog.AuthenticatedUser("42"))
	require.NoError(t, err)

	assert.Equal(t, query.KindExport, response.Kind)
	assert.Equal(t, "books.csv", response.Export.Filename)
	assert.NotEmpty(t, response.Export.Data)

	require.Len(t, store.SearchSpecs, 1)
	assert.Equal(t, catalog.PageModeAll, store.SearchSpecs[0].Page().Mode(),
		"exports cover the whole filtered set, not one page")

	assert.Len(t, store.Recorded, 1, "an export of a search is still a search")
}

func Test_Resolve_UnknownExportValueDegradesToPage(t *testing.T) {
	store := &testutil.FakeCatalogStore{Result: fixedResult()}
	handler := newHandler(t, store)

	params := url.Values{
		catalog.ParamTerm:   {"machado"},
		catalog.ParamExport: {"pdf"},
	}

	response, err := handler.Resolve(context.Background(), params, catalog.Unidentified())
	require.NoError(t, err)

	assert.Equal(t, query.KindPage, response.Kind)
	require.Len(t, store.SearchSpecs, 1)
	assert.Equal(t, catalog.PageModeFixed, store.SearchSpecs[0].Page().Mode())
}

func Test_History_ScopedToOwner(t *testing.T) {
	store := &testutil.FakeCatalogStore{History: testutil.FixtureHistory("user:42")}
	handler := newHandler(t, store)

	records, err := handler.History(context.Background(), catalog.AuthenticatedUser("42"))
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, []string{"user:42"}, store.HistoryKeys)
}

func Test_History_NilIdentityQueriesEmptyKey(t *testing.T) {
	store := &testutil.FakeCatalogStore{}
	handler := newHandler(t, store)

	records, err := handler.History(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, records)
	assert.Equal(t, []string{""}, store.HistoryKeys)
}

func Test_ExportHistory(t *testing.T) {
	store := &testutil.FakeCatalogStore{History: testutil.FixtureHistory("session:abc")}
	handler := newHandler(t, store)

	artifact, err := handler.ExportHistory(context.Background(), catalog.AnonymousSession("abc"), export.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "search_history.csv", artifact.Filename)
	assert.Contains(t, string(artifact.Data), "machado")
}

func Test_ExportHistory_ListFailurePropagates(t *testing.T) {
	store := &testutil.FakeCatalogStore{HistoryErr: errors.New("connection refused")}
	handler := newHandler(t, store)

	_, err := handler.ExportHistory(context.Background(), catalog.AuthenticatedUser("42"), export.FormatCSV)
	assert.Error(t, err)
}
