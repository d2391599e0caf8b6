package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Request parameter names form the contract with the presentation collaborator.
const (
	ParamTerm          = "term"
	ParamTitle         = "title"
	ParamAuthor        = "author"
	ParamCode          = "code"
	ParamAvailableOnly = "availableOnly"
	ParamCategory      = "category"
	ParamLanguage      = "language"
	ParamYearMin       = "yearMin"
	ParamYearMax       = "yearMax"
	ParamSort          = "sort"
	ParamPageMode      = "pageMode"
	ParamPage          = "page"
	ParamExport        = "export"
	ParamSuggest       = "suggest"
)

// FilterMode distinguishes the two mutually exclusive text-search modes.
type FilterMode int

const (
	// FilterModeNone means no text constraint at all.
	FilterModeNone FilterMode = iota

	// FilterModeFreeText matches one term against title OR author OR code.
	FilterModeFreeText

	// FilterModeFields matches each supplied field against only that field,
	// combined with AND.
	FilterModeFields
)

// FilterSpec is the normalized representation of one resolved search request.
//
// It is ephemeral and request-scoped. Constructing a FilterSpec never fails:
// absent fields default to "no constraint" and malformed numeric or enum
// fields are coerced to their defaults. Use FilterFromParams to build one
// from raw request parameters.
type FilterSpec struct {
	term          string
	fieldTitle    string
	fieldAuthor   string
	fieldCode     string
	availableOnly bool
	categoryID    int64
	language      string
	yearMin       int
	yearMax       int
	sortKey       SortKey
	page          PageRequest
}

// FilterFromParams normalizes raw request parameters into a FilterSpec.
//
// Parsing is deliberately permissive:
//   - empty or whitespace-only text values impose no constraint
//   - malformed numeric values (year bounds, page number, category id) are
//     coerced to "no constraint" rather than raising
//   - unknown sort and pageMode values fall back to their defaults
//   - an inverted year range (min > max) is treated as unconstrained
//   - the free-text term takes precedence over field-mode parameters when
//     both are present
func FilterFromParams(params url.Values) FilterSpec {
	spec := FilterSpec{
		term:          strings.TrimSpace(params.Get(ParamTerm)),
		availableOnly: flagValue(params.Get(ParamAvailableOnly)),
		categoryID:    positiveInt64Value(params.Get(ParamCategory)),
		language:      strings.TrimSpace(params.Get(ParamLanguage)),
		yearMin:       positiveIntValue(params.Get(ParamYearMin)),
		yearMax:       positiveIntValue(params.Get(ParamYearMax)),
		sortKey:       ParseSortKey(params.Get(ParamSort)),
		page:          PageRequestFromParams(params),
	}

	if spec.term == "" {
		spec.fieldTitle = strings.TrimSpace(params.Get(ParamTitle))
		spec.fieldAuthor = strings.TrimSpace(params.Get(ParamAuthor))
		spec.fieldCode = strings.TrimSpace(params.Get(ParamCode))
	}

	if spec.yearMin != 0 && spec.yearMax != 0 && spec.yearMin > spec.yearMax {
		spec.yearMin, spec.yearMax = 0, 0
	}

	return spec
}

// Mode reports which text-search mode the spec is in.
func (fs FilterSpec) Mode() FilterMode {
	switch {
	case fs.term != "":
		return FilterModeFreeText
	case fs.fieldTitle != "" || fs.fieldAuthor != "" || fs.fieldCode != "":
		return FilterModeFields
	default:
		return FilterModeNone
	}
}

func (fs FilterSpec) Term() string {
	return fs.term
}

func (fs FilterSpec) FieldTitle() string {
	return fs.fieldTitle
}

func (fs FilterSpec) FieldAuthor() string {
	return fs.fieldAuthor
}

func (fs FilterSpec) FieldCode() string {
	return fs.fieldCode
}

func (fs FilterSpec) AvailableOnly() bool {
	return fs.availableOnly
}

// CategoryID returns the category constraint, 0 meaning unconstrained.
func (fs FilterSpec) CategoryID() int64 {
	return fs.categoryID
}

func (fs FilterSpec) Language() string {
	return fs.language
}

// YearMin returns the inclusive lower year bound, 0 meaning unconstrained.
func (fs FilterSpec) YearMin() int {
	return fs.yearMin
}

// YearMax returns the inclusive upper year bound, 0 meaning unconstrained.
func (fs FilterSpec) YearMax() int {
	return fs.yearMax
}

func (fs FilterSpec) SortKey() SortKey {
	return fs.sortKey
}

func (fs FilterSpec) Page() PageRequest {
	return fs.page
}

// IsTrivial reports whether the spec carries no term and no filter at all.
// Trivial specs (the bare landing view) are not worth recording in history.
// Sort key and pagination never make a spec non-trivial.
func (fs FilterSpec) IsTrivial() bool {
	return fs.Mode() == FilterModeNone &&
		!fs.availableOnly &&
		fs.categoryID == 0 &&
		fs.language == "" &&
		fs.yearMin == 0 &&
		fs.yearMax == 0
}

// ForExport returns a copy of the spec that resolves the entire filtered set,
// since export artifacts always cover all matching records, not one page.
func (fs FilterSpec) ForExport() FilterSpec {
	spec := fs
	spec.page = PageRequest{mode: PageModeAll}

	return spec
}

// SuggestRequested reports whether the request routes to the suggestion
// engine instead of the main pipeline.
func SuggestRequested(params url.Values) bool {
	return flagValue(params.Get(ParamSuggest))
}

func flagValue(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	if raw == "on" {
		return true
	}

	parsed, parseErr := strconv.ParseBool(raw)
	if parseErr != nil {
		return false
	}

	return parsed
}

func positiveIntValue(raw string) int {
	parsed, parseErr := strconv.Atoi(strings.TrimSpace(raw))
	if parseErr != nil || parsed <= 0 {
		return 0
	}

	return parsed
}

func positiveInt64Value(raw string) int64 {
	parsed, parseErr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if parseErr != nil || parsed <= 0 {
		return 0
	}

	return parsed
}
