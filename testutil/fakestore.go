package testutil

import (
	"context"

	"github.com/acervolib/catalog-query-go/catalog"
)

// FakeCatalogStore is an in-memory stand-in for the Postgres engine. Canned
// responses go in, every call is captured for assertions.
type FakeCatalogStore struct {
	Result      catalog.SearchResult
	Suggestions []string
	History     []catalog.SearchQueryRecord

	SearchErr  error
	SuggestErr error
	RecordErr  error
	HistoryErr error

	SearchSpecs  []catalog.FilterSpec
	SuggestCalls []string
	Recorded     []catalog.SearchQueryRecord
	HistoryKeys  []string
}

func (f *FakeCatalogStore) SearchBooks(_ context.Context, spec catalog.FilterSpec) (catalog.SearchResult, error) {
	f.SearchSpecs = append(f.SearchSpecs, spec)

	if f.SearchErr != nil {
		return catalog.SearchResult{}, f.SearchErr
	}

	return f.Result, nil
}

func (f *FakeCatalogStore) SuggestTerms(_ context.Context, partialTerm string) ([]string, error) {
	f.SuggestCalls = append(f.SuggestCalls, partialTerm)

	if f.SuggestErr != nil {
		return nil, f.SuggestErr
	}

	return f.Suggestions, nil
}

func (f *FakeCatalogStore) RecordSearch(_ context.Context, record catalog.SearchQueryRecord) error {
	f.Recorded = append(f.Recorded, record)

	return f.RecordErr
}

func (f *FakeCatalogStore) ListSearchHistory(_ context.Context, ownerKey string) ([]catalog.SearchQueryRecord, error) {
	f.HistoryKeys = append(f.HistoryKeys, ownerKey)

	if f.HistoryErr != nil {
		return nil, f.HistoryErr
	}

	return f.History, nil
}
