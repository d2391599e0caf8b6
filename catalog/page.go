package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// FixedPageSize is the number of records per page in fixed pagination mode.
const FixedPageSize = 20

// PageMode distinguishes bounded page-size slicing from returning the entire set.
type PageMode int

const (
	// PageModeFixed slices the result set into pages of FixedPageSize records.
	PageModeFixed PageMode = iota

	// PageModeAll returns the entire ordered set without slicing.
	PageModeAll
)

const pageModeAllValue = "all"

// PageRequest is the pagination part of a resolved request: the mode and,
// in fixed mode, the 1-based requested page number. The number is kept as
// requested; clamping against the actual total happens in BuildPageInfo once
// the filtered count is known.
type PageRequest struct {
	mode   PageMode
	number int
}

// PageRequestFromParams parses pageMode and page permissively: any pageMode
// other than "all" means fixed, and a malformed or non-positive page number
// falls back to page 1.
func PageRequestFromParams(params url.Values) PageRequest {
	if strings.TrimSpace(params.Get(ParamPageMode)) == pageModeAllValue {
		return PageRequest{mode: PageModeAll}
	}

	number, parseErr := strconv.Atoi(strings.TrimSpace(params.Get(ParamPage)))
	if parseErr != nil || number < 1 {
		number = 1
	}

	return PageRequest{mode: PageModeFixed, number: number}
}

func (pr PageRequest) Mode() PageMode {
	return pr.mode
}

// Number returns the requested 1-based page number. It is meaningful in fixed
// mode only.
func (pr PageRequest) Number() int {
	return pr.number
}

// PageInfo describes one resolved page of a fixed-mode result set.
type PageInfo struct {
	Page        int
	TotalPages  int
	TotalCount  int
	HasNext     bool
	HasPrevious bool
}

// BuildPageInfo resolves a requested page number against the total filtered
// count. Page numbers beyond the last page clamp to the last page and numbers
// below 1 clamp to 1; an empty set resolves to page 1 of zero pages. Clamping
// never errors, so a stale page link after records changed still resolves to
// a valid page.
func BuildPageInfo(totalCount int, requestedPage int) PageInfo {
	totalPages := (totalCount + FixedPageSize - 1) / FixedPageSize

	page := requestedPage
	if page < 1 {
		page = 1
	}

	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	return PageInfo{
		Page:        page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// Offset returns the row offset of the resolved page within the ordered set.
func (pi PageInfo) Offset() int {
	return (pi.Page - 1) * FixedPageSize
}
