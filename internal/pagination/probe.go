package pagination

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/zayo-client/internal/http"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// Transport is the subset of the HTTP client the paginator needs.
type Transport interface {
	Post(ctx context.Context, path string, body interface{}) (*http.Response, error)
}

// Prober asks a list endpoint how many records match a filter.
type Prober struct {
	transport Transport
}

// NewProber creates a prober.
func NewProber(transport Transport) *Prober {
	return &Prober{transport: transport}
}

// Count posts the request with top=0 and returns totalRecordCount. It is
// not retried.
func (p *Prober) Count(ctx context.Context, path string, opts *zayo.RequestOptions) (int, error) {
	resp, err := p.transport.Post(ctx, path, opts.PageRequest(0, 0))
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", path, err)
	}

	page, err := decodePage(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", path, err)
	}

	if page.Metadata.TotalRecordCount < 0 {
		return 0, fmt.Errorf("counting %s: %w: negative totalRecordCount", path, zayo.ErrMalformedResponse)
	}

	return page.Metadata.TotalRecordCount, nil
}

func decodePage(body []byte) (*zayo.PageData, error) {
	var page zayo.PageResponse

	err := json.Unmarshal(body, &page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", zayo.ErrMalformedResponse, err)
	}

	if page.Data == nil {
		return nil, fmt.Errorf("%w: missing data", zayo.ErrMalformedResponse)
	}

	return page.Data, nil
}
