package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// CasesClient implements zayo.CasesClient.
type CasesClient struct {
	client *Client
}

// NewCasesClient creates a new cases client.
func NewCasesClient(client *Client) *CasesClient {
	return &CasesClient{client: client}
}

// List implements zayo.CasesClient.List. Records are deduplicated by case
// number unless opts names another key.
func (c *CasesClient) List(ctx context.Context, opts *zayo.RequestOptions) (*zayo.ListResponse[zayo.Case], error) {
	list, err := listRecords[zayo.Case](ctx, c.client, c.client.routes.Cases, withDedupKey(opts, zayo.FieldCaseNumber))
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}

	return list, nil
}

// Get implements zayo.CasesClient.Get. A lookup matching nothing returns
// zayo.ErrCaseNotFound.
func (c *CasesClient) Get(ctx context.Context, caseNumber string) (*zayo.Case, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return nil, zayo.ErrCaseNumberRequired
	}

	opts := zayo.NewRequestOptions().
		WithFilter(zayo.FieldCaseNumber, caseNumber).
		WithMaxRecords(1)

	list, err := c.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	if len(list.Records) == 0 {
		if list.Incomplete() {
			return nil, fmt.Errorf("getting case %s: %w", caseNumber, zayo.ErrIncompleteResult)
		}

		return nil, fmt.Errorf("%w: %s", zayo.ErrCaseNotFound, caseNumber)
	}

	return &list.Records[0], nil
}

// Details implements zayo.CasesClient.Details. When the case does not exist
// no impact or notification request is made.
func (c *CasesClient) Details(ctx context.Context, caseNumber string) (*zayo.CaseDetails, error) {
	found, err := c.Get(ctx, caseNumber)
	if err != nil {
		if errors.Is(err, zayo.ErrCaseNotFound) {
			return &zayo.CaseDetails{
				Found:         false,
				Impacts:       []zayo.Impact{},
				Notifications: []zayo.NotificationDetail{},
			}, nil
		}

		return nil, err
	}

	impacts, err := c.client.impacts.ListByCase(ctx, found.CaseNumber)
	if err != nil {
		return nil, err
	}

	headers, err := c.client.notifications.ListByCase(ctx, found.CaseNumber)
	if err != nil {
		return nil, err
	}

	details, err := c.notificationDetails(ctx, headers)
	if err != nil {
		return nil, err
	}

	return &zayo.CaseDetails{
		Found:         true,
		Case:          found,
		Impacts:       impacts.Records,
		Notifications: details,
		FailedPages:   impacts.Pagination.FailedPages,
	}, nil
}

// notificationDetails fetches one detail per header, concurrently, keeping
// header order.
func (c *CasesClient) notificationDetails(ctx context.Context, headers []zayo.Notification) ([]zayo.NotificationDetail, error) {
	details := make([]zayo.NotificationDetail, len(headers))
	workers := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(c.client.notificationConcurrency)

	for i, header := range headers {
		workers.Go(func(ctx context.Context) error {
			detail, err := c.client.notifications.Get(ctx, header.Name)
			if err != nil {
				return err
			}

			details[i] = *detail

			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return nil, err
	}

	return details, nil
}

// ListByCircuit implements zayo.CasesClient.ListByCircuit. It returns the
// open cases that have an impact on circuitID.
func (c *CasesClient) ListByCircuit(ctx context.Context, circuitID string, opts *zayo.RequestOptions) (*zayo.ListResponse[zayo.Case], error) {
	circuitID = zayo.FormatCircuitID(circuitID)
	if circuitID == "" {
		return nil, zayo.ErrCircuitIDRequired
	}

	impacts, err := c.client.impacts.ListByCircuit(ctx, circuitID, nil)
	if err != nil {
		return nil, err
	}

	affected := make(map[string]struct{}, len(impacts.Records))

	for _, impact := range impacts.Records {
		if zayo.FormatCircuitID(impact.CircuitID) == circuitID {
			affected[impact.CaseNumber] = struct{}{}
		}
	}

	if len(affected) == 0 {
		return &zayo.ListResponse[zayo.Case]{
			Pagination: zayo.Pagination{FailedPages: impacts.Pagination.FailedPages},
			Records:    []zayo.Case{},
		}, nil
	}

	cases, err := c.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	open := make([]zayo.Case, 0, len(affected))

	for _, rec := range cases.Records {
		if _, ok := affected[rec.CaseNumber]; ok && !rec.IsClosed() {
			open = append(open, rec)
		}
	}

	pagination := cases.Pagination
	pagination.FailedPages = append(impacts.Pagination.FailedPages, cases.Pagination.FailedPages...)

	return &zayo.ListResponse[zayo.Case]{
		Pagination: pagination,
		Records:    open,
	}, nil
}

var _ zayo.CasesClient = (*CasesClient)(nil)
