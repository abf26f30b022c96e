package zayo

import (
	"encoding/json"
	"maps"
	"slices"
)

// Paging is the offset/limit pair sent with every page request.
type Paging struct {
	Top  int `json:"top"`
	Skip int `json:"skip"`
}

// PageRequest is the POST body for list endpoints.
type PageRequest struct {
	Filter  map[string]any `json:"filter,omitempty"`
	OrderBy []string       `json:"orderBy,omitempty"`
	Paging  Paging         `json:"paging"`
}

// PageMetadata carries the record count for the filter.
type PageMetadata struct {
	TotalRecordCount int `json:"totalRecordCount"`
}

// PageData holds one page of raw records.
type PageData struct {
	Metadata PageMetadata      `json:"metadata"`
	Records  []json.RawMessage `json:"records"`
}

// PageResponse is the envelope returned by list endpoints.
type PageResponse struct {
	Data *PageData `json:"data"`
}

// RecordResponse is the envelope returned by single-record endpoints.
type RecordResponse struct {
	Data json.RawMessage `json:"data"`
}

// PageFailure describes a page that was dropped from a result.
type PageFailure struct {
	Index    int    `json:"index"    yaml:"index"`
	Skip     int    `json:"skip"     yaml:"skip"`
	Top      int    `json:"top"      yaml:"top"`
	Attempts int    `json:"attempts" yaml:"attempts"`
	Error    string `json:"error"    yaml:"error"`
}

// Pagination summarises how a list result was assembled.
type Pagination struct {
	TotalRecords int           `json:"total_records"          yaml:"total_records"`
	PageSize     int           `json:"page_size"              yaml:"page_size"`
	PageCount    int           `json:"page_count"             yaml:"page_count"`
	FailedPages  []PageFailure `json:"failed_pages,omitempty" yaml:"failed_pages,omitempty"`
}

// ListResponse is the result of a list call.
type ListResponse[T any] struct {
	Pagination Pagination `json:"pagination" yaml:"pagination"`
	Records    []T        `json:"records"    yaml:"records"`
}

// Incomplete reports whether any page was dropped.
func (r *ListResponse[T]) Incomplete() bool {
	return r != nil && len(r.Pagination.FailedPages) > 0
}

// RequestOptions holds the criteria of a list call.
type RequestOptions struct {
	// Filter: field/value pairs passed through to the API.
	Filter map[string]any
	// OrderBy: sort clauses such as "primaryDate asc".
	OrderBy []string
	// PageSize: requested page size, clamped to the API maximum.
	PageSize int
	// MaxRecords: stop after this many records. Zero means all.
	MaxRecords int
	// DedupKey: drop records whose value for this JSON field was already seen.
	DedupKey string
}

// NewRequestOptions creates empty request options.
func NewRequestOptions() *RequestOptions {
	return &RequestOptions{
		Filter: make(map[string]any),
	}
}

// MostRecent returns options that fetch only the newest record by primary date.
func MostRecent() *RequestOptions {
	return NewRequestOptions().WithOrderBy(OrderByDateLater).WithMaxRecords(1)
}

// Oldest returns options that fetch only the oldest record by primary date.
func Oldest() *RequestOptions {
	return NewRequestOptions().WithOrderBy(OrderByDateSooner).WithMaxRecords(1)
}

// WithFilter adds a filter field.
func (o *RequestOptions) WithFilter(key string, value any) *RequestOptions {
	if o.Filter == nil {
		o.Filter = make(map[string]any)
	}

	o.Filter[key] = value

	return o
}

// WithOrderBy appends sort clauses.
func (o *RequestOptions) WithOrderBy(orders ...OrderBy) *RequestOptions {
	for _, order := range orders {
		o.OrderBy = append(o.OrderBy, string(order))
	}

	return o
}

// WithPageSize sets the requested page size.
func (o *RequestOptions) WithPageSize(size int) *RequestOptions {
	o.PageSize = size

	return o
}

// WithMaxRecords limits the number of records returned.
func (o *RequestOptions) WithMaxRecords(limit int) *RequestOptions {
	o.MaxRecords = limit

	return o
}

// WithDedupKey drops duplicate records sharing a key field value.
func (o *RequestOptions) WithDedupKey(field string) *RequestOptions {
	o.DedupKey = field

	return o
}

// Clone returns a deep copy so callers can add filters without aliasing.
func (o *RequestOptions) Clone() *RequestOptions {
	if o == nil {
		return NewRequestOptions()
	}

	out := *o
	out.Filter = maps.Clone(o.Filter)
	out.OrderBy = slices.Clone(o.OrderBy)

	if out.Filter == nil {
		out.Filter = make(map[string]any)
	}

	return &out
}

// PageRequest builds the body for one page.
func (o *RequestOptions) PageRequest(top, skip int) PageRequest {
	req := PageRequest{Paging: Paging{Top: top, Skip: skip}}
	if o == nil {
		return req
	}

	if len(o.Filter) > 0 {
		req.Filter = o.Filter
	}

	if len(o.OrderBy) > 0 {
		req.OrderBy = o.OrderBy
	}

	return req
}
