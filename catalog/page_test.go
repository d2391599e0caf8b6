package catalog_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acervolib/catalog-query-go/catalog"
)

func Test_PageRequestFromParams(t *testing.T) {
	tests := []struct {
		name           string
		params         url.Values
		expectedMode   catalog.PageMode
		expectedNumber int
	}{
		{
			name:           "defaults_to_fixed_mode_page_one",
			params:         url.Values{},
			expectedMode:   catalog.PageModeFixed,
			expectedNumber: 1,
		},
		{
			name:           "all_mode_ignores_page_number",
			params:         url.Values{catalog.ParamPageMode: {"all"}, catalog.ParamPage: {"7"}},
			expectedMode:   catalog.PageModeAll,
			expectedNumber: 0,
		},
		{
			name:           "unknown_page_mode_means_fixed",
			params:         url.Values{catalog.ParamPageMode: {"everything"}},
			expectedMode:   catalog.PageModeFixed,
			expectedNumber: 1,
		},
		{
			name:           "valid_page_number_is_kept",
			params:         url.Values{catalog.ParamPage: {"4"}},
			expectedMode:   catalog.PageModeFixed,
			expectedNumber: 4,
		},
		{
			name:           "malformed_page_number_falls_back_to_one",
			params:         url.Values{catalog.ParamPage: {"two"}},
			expectedMode:   catalog.PageModeFixed,
			expectedNumber: 1,
		},
		{
			name:           "non_positive_page_number_falls_back_to_one",
			params:         url.Values{catalog.ParamPage: {"-3"}},
			expectedMode:   catalog.PageModeFixed,
			expectedNumber: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := catalog.PageRequestFromParams(tc.params)
			assert.Equal(t, tc.expectedMode, request.Mode())
			assert.Equal(t, tc.expectedNumber, request.Number())
		})
	}
}

func Test_BuildPageInfo(t *testing.T) {
	tests := []struct {
		name          string
		totalCount    int
		requestedPage int
		expected      catalog.PageInfo
	}{
		{
			name:          "empty_set_resolves_to_page_one_of_zero_pages",
			totalCount:    0,
			requestedPage: 5,
			expected:      catalog.PageInfo{Page: 1, TotalPages: 0, TotalCount: 0},
		},
		{
			name:          "partial_page_counts_as_one_page",
			totalCount:    7,
			requestedPage: 1,
			expected:      catalog.PageInfo{Page: 1, TotalPages: 1, TotalCount: 7},
		},
		{
			name:          "exact_multiple_of_page_size",
			totalCount:    40,
			requestedPage: 2,
			expected:      catalog.PageInfo{Page: 2, TotalPages: 2, TotalCount: 40, HasPrevious: true},
		},
		{
			name:          "one_record_past_a_boundary_opens_a_new_page",
			totalCount:    41,
			requestedPage: 1,
			expected:      catalog.PageInfo{Page: 1, TotalPages: 3, TotalCount: 41, HasNext: true},
		},
		{
			name:          "page_beyond_last_clamps_to_last",
			totalCount:    41,
			requestedPage: 99,
			expected:      catalog.PageInfo{Page: 3, TotalPages: 3, TotalCount: 41, HasPrevious: true},
		},
		{
			name:          "page_below_one_clamps_to_first",
			totalCount:    41,
			requestedPage: 0,
			expected:      catalog.PageInfo{Page: 1, TotalPages: 3, TotalCount: 41, HasNext: true},
		},
		{
			name:          "middle_page_has_both_neighbours",
			totalCount:    41,
			requestedPage: 2,
			expected:      catalog.PageInfo{Page: 2, TotalPages: 3, TotalCount: 41, HasNext: true, HasPrevious: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, catalog.BuildPageInfo(tc.totalCount, tc.requestedPage))
		})
	}
}

func Test_PageInfo_Offset(t *testing.T) {
	assert.Equal(t, 0, catalog.BuildPageInfo(41, 1).Offset())
	assert.Equal(t, 20, catalog.BuildPageInfo(41, 2).Offset())
	assert.Equal(t, 40, catalog.BuildPageInfo(41, 3).Offset())
}
