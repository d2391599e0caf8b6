package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// SearchQueryRecord is one durably recorded search, owned by exactly one
// identity (authenticated user or anonymous session) through its opaque
// owner key. Records are append-only: they are created once per resolved
// non-trivial search and never mutated.
type SearchQueryRecord struct {
	ID         uuid.UUID
	OwnerKey   string
	Term       string
	ParamsJSON []byte
	CreatedAt  time.Time
}

// searchParams is the snapshot of resolved filter values stored with each
// record. It mirrors the request contract, not the internal FilterSpec shape.
type searchParams struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Code          string `json:"code"`
	AvailableOnly bool   `json:"availableOnly"`
	Category      int64  `json:"category"`
	Language      string `json:"language"`
	YearMin       int    `json:"yearMin"`
	YearMax       int    `json:"yearMax"`
	Sort          string `json:"sort"`
}

// BuildSearchQueryRecord is a factory method for SearchQueryRecord.
//
// It snapshots the resolved (not raw) filter values as JSON, so malformed
// inputs that were coerced to defaults are recorded the way they were
// actually applied. Returns an error only if the snapshot cannot be
// marshaled.
func BuildSearchQueryRecord(spec FilterSpec, identity Identity, createdAt time.Time) (SearchQueryRecord, error) {
	params := searchParams{
		Title:         spec.FieldTitle(),
		Author:        spec.FieldAuthor(),
		Code:          spec.FieldCode(),
		AvailableOnly: spec.AvailableOnly(),
		Category:      spec.CategoryID(),
		Language:      spec.Language(),
		YearMin:       spec.YearMin(),
		YearMax:       spec.YearMax(),
		Sort:          string(spec.SortKey()),
	}

	paramsJSON, marshalErr := jsoniter.ConfigFastest.Marshal(params)
	if marshalErr != nil {
		return SearchQueryRecord{}, errors.Join(ErrMarshalingSearchParamsFailed, marshalErr)
	}

	return SearchQueryRecord{
		ID:         uuid.New(),
		OwnerKey:   identity.OwnerKey(),
		Term:       spec.Term(),
		ParamsJSON: paramsJSON,
		CreatedAt:  createdAt,
	}, nil
}
