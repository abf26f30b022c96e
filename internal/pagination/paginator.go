// Package pagination turns one logical list call into a count probe plus a
// bounded fan-out of offset/limit page requests, reassembled in page order.
package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// Config tunes a Paginator. Zero values fall back to package defaults.
type Config struct {
	MaxTopCount      int
	MaxConcurrency   int
	PageTimeout      time.Duration
	FetchTimeout     time.Duration
	RetryMaxAttempts int
	RetryMultiplier  time.Duration
	RetryMaxWait     time.Duration
	Logger           zayo.Logger
}

// RecordSet is the assembled result of a list call.
type RecordSet struct {
	Records     []json.RawMessage
	Total       int
	PageSize    int
	PageCount   int
	FailedPages []zayo.PageFailure
}

// Pagination summarises the set for a ListResponse.
func (s *RecordSet) Pagination() zayo.Pagination {
	return zayo.Pagination{
		TotalRecords: s.Total,
		PageSize:     s.PageSize,
		PageCount:    s.PageCount,
		FailedPages:  s.FailedPages,
	}
}

// Paginator fetches every page of a list endpoint concurrently.
type Paginator struct {
	transport Transport
	prober    *Prober
	cfg       Config
	logger    zayo.Logger
}

type pageResult struct {
	records  []json.RawMessage
	attempts int
	err      error
}

// New creates a Paginator.
func New(transport Transport, cfg Config) *Paginator {
	if cfg.MaxTopCount <= 0 || cfg.MaxTopCount > constants.MaxTopCount {
		cfg.MaxTopCount = constants.MaxTopCount
	}

	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = constants.DefaultMaxConcurrency
	}

	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = constants.DefaultPageTimeout
	}

	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = constants.DefaultPageRetryAttempts
	}

	if cfg.RetryMultiplier <= 0 {
		cfg.RetryMultiplier = constants.DefaultRetryMultiplier
	}

	if cfg.RetryMaxWait <= 0 {
		cfg.RetryMaxWait = constants.DefaultRetryWaitMax
	}

	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &Paginator{
		transport: transport,
		prober:    NewProber(transport),
		cfg:       cfg,
		logger:    logger,
	}
}

// Count runs the zero-row probe for path.
func (p *Paginator) Count(ctx context.Context, path string, opts *zayo.RequestOptions) (int, error) {
	return p.prober.Count(ctx, path, opts)
}

// FetchAll returns every record matching opts. Pages that keep timing out
// are dropped and reported in FailedPages. If ctx is cancelled or the fetch
// deadline passes, FetchAll returns no records and an error wrapping
// zayo.ErrFetchCancelled.
func (p *Paginator) FetchAll(ctx context.Context, path string, opts *zayo.RequestOptions) (*RecordSet, error) {
	if opts == nil {
		opts = zayo.NewRequestOptions()
	}

	if p.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.cfg.FetchTimeout)
		defer cancel()
	}

	start := time.Now()

	total, err := p.prober.Count(ctx, path, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, cancelled(ctx)
		}

		return nil, err
	}

	if opts.MaxRecords > 0 {
		total = min(total, opts.MaxRecords)
	}

	pageSize := EffectivePageSize(opts.PageSize, p.cfg.MaxTopCount)
	set := &RecordSet{Total: total, PageSize: pageSize, Records: []json.RawMessage{}}

	if total == 0 {
		p.logger.Debug("no records to fetch", map[string]interface{}{"path": path})

		return set, nil
	}

	pages := Plan(total, pageSize)
	set.PageCount = len(pages)

	p.logger.Debug("fetching pages", map[string]interface{}{
		"path":        path,
		"total":       total,
		"page_size":   pageSize,
		"page_count":  len(pages),
		"concurrency": p.cfg.MaxConcurrency,
	})

	results := make([]pageResult, len(pages))
	workers := pool.New().WithContext(ctx).WithMaxGoroutines(p.cfg.MaxConcurrency)

	for _, page := range pages {
		workers.Go(func(ctx context.Context) error {
			results[page.Index] = p.fetchWithRetry(ctx, path, opts, page)

			return nil
		})
	}

	_ = workers.Wait()

	if ctx.Err() != nil {
		return nil, cancelled(ctx)
	}

	p.assemble(set, path, pages, results, opts.DedupKey)

	recordsFetchedTotal.WithLabelValues(path).Add(float64(len(set.Records)))

	p.logger.Info("fetch complete", map[string]interface{}{
		"path":         path,
		"records":      len(set.Records),
		"total":        total,
		"failed_pages": len(set.FailedPages),
		"duration":     time.Since(start).String(),
	})

	return set, nil
}

func (p *Paginator) assemble(set *RecordSet, path string, pages []Page, results []pageResult, dedupKey string) {
	seen := make(map[string]struct{})

	for i, res := range results {
		if res.err != nil {
			pagesTotal.WithLabelValues(path, outcomeFailed).Inc()

			set.FailedPages = append(set.FailedPages, zayo.PageFailure{
				Index:    pages[i].Index,
				Skip:     pages[i].Skip,
				Top:      pages[i].Top,
				Attempts: res.attempts,
				Error:    res.err.Error(),
			})

			p.logger.Warn("page dropped", map[string]interface{}{
				"path":     path,
				"page":     pages[i].Index,
				"skip":     pages[i].Skip,
				"attempts": res.attempts,
				"error":    res.err.Error(),
			})

			continue
		}

		pagesTotal.WithLabelValues(path, outcomeOK).Inc()

		for _, rec := range res.records {
			if dedupKey != "" {
				key, ok := recordKey(rec, dedupKey)
				if ok {
					if _, dup := seen[key]; dup {
						continue
					}

					seen[key] = struct{}{}
				}
			}

			set.Records = append(set.Records, rec)
		}
	}
}

func (p *Paginator) fetchWithRetry(ctx context.Context, path string, opts *zayo.RequestOptions, page Page) pageResult {
	var result pageResult

	if ctx.Err() != nil {
		result.err = ctx.Err()

		return result
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			NewJitterBackOff(p.cfg.RetryMultiplier, p.cfg.RetryMaxWait),
			uint64(p.cfg.RetryMaxAttempts-1), //nolint:gosec // attempts are positive after New
		),
		ctx,
	)

	operation := func() error {
		result.attempts++

		records, err := p.fetchPage(ctx, path, opts, page)
		if err == nil {
			result.records = records

			return nil
		}

		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}

		if zayo.IsTransient(err) {
			return err
		}

		return backoff.Permanent(err)
	}

	notify := func(err error, wait time.Duration) {
		pageRetriesTotal.WithLabelValues(path).Inc()
		pageBackoffSeconds.Observe(wait.Seconds())

		p.logger.Warn("retrying page after timeout", map[string]interface{}{
			"path":    path,
			"page":    page.Index,
			"attempt": result.attempts,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
	}

	result.err = backoff.RetryNotify(operation, policy, notify)

	return result
}

func (p *Paginator) fetchPage(ctx context.Context, path string, opts *zayo.RequestOptions, page Page) ([]json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.cfg.PageTimeout)
	defer cancel()

	resp, err := p.transport.Post(attemptCtx, path, opts.PageRequest(page.Top, page.Skip))
	if err != nil {
		if attemptCtx.Err() != nil && ctx.Err() == nil && !zayo.IsTransient(err) {
			return nil, &zayo.TransientNetworkError{Err: err}
		}

		return nil, fmt.Errorf("page %d: %w", page.Index, err)
	}

	data, err := decodePage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page.Index, err)
	}

	records := data.Records
	if len(records) > page.Top {
		records = records[:page.Top]
	}

	return records, nil
}

func recordKey(rec json.RawMessage, field string) (string, bool) {
	var fields map[string]json.RawMessage

	if json.Unmarshal(rec, &fields) != nil {
		return "", false
	}

	v, ok := fields[field]

	return string(v), ok
}

func cancelled(ctx context.Context) error {
	cause := context.Cause(ctx)
	if cause == nil {
		cause = ctx.Err()
	}

	if errors.Is(cause, zayo.ErrFetchCancelled) {
		return cause
	}

	return fmt.Errorf("%w: %w", zayo.ErrFetchCancelled, cause)
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
