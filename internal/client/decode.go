package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// listRecords runs a paginated list call and decodes every record into T.
func listRecords[T any](ctx context.Context, c *Client, path string, opts *zayo.RequestOptions) (*zayo.ListResponse[T], error) {
	c.warnIfTokenExpired()

	set, err := c.paginator.FetchAll(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0, len(set.Records))

	for i, raw := range set.Records {
		var rec T

		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d from %s: %w", zayo.ErrMalformedResponse, i, path, err)
		}

		records = append(records, rec)
	}

	return &zayo.ListResponse[T]{
		Pagination: set.Pagination(),
		Records:    records,
	}, nil
}

// withDedupKey returns a copy of opts that drops repeated records sharing
// field, unless the caller already chose a key.
func withDedupKey(opts *zayo.RequestOptions, field string) *zayo.RequestOptions {
	out := opts.Clone()
	if out.DedupKey == "" {
		out.DedupKey = field
	}

	return out
}

// getRecord performs a single-record GET and returns the raw "data" member.
func getRecord(ctx context.Context, c *Client, path string) (json.RawMessage, error) {
	c.warnIfTokenExpired()

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var envelope zayo.RecordResponse

	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", zayo.ErrMalformedResponse, path, err)
	}

	return envelope.Data, nil
}
