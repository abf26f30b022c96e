package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// ImpactsClient implements zayo.ImpactsClient.
type ImpactsClient struct {
	client *Client
}

// NewImpactsClient creates a new impacts client.
func NewImpactsClient(client *Client) *ImpactsClient {
	return &ImpactsClient{client: client}
}

// List implements zayo.ImpactsClient.List.
func (c *ImpactsClient) List(ctx context.Context, opts *zayo.RequestOptions) (*zayo.ListResponse[zayo.Impact], error) {
	list, err := listRecords[zayo.Impact](ctx, c.client, c.client.routes.Impacts, opts)
	if err != nil {
		return nil, fmt.Errorf("listing impacts: %w", err)
	}

	return list, nil
}

// ListByCase implements zayo.ImpactsClient.ListByCase.
func (c *ImpactsClient) ListByCase(ctx context.Context, caseNumber string) (*zayo.ListResponse[zayo.Impact], error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return nil, zayo.ErrCaseNumberRequired
	}

	return c.List(ctx, zayo.NewRequestOptions().WithFilter(zayo.FieldCaseNumber, caseNumber))
}

// ListByCircuit implements zayo.ImpactsClient.ListByCircuit.
func (c *ImpactsClient) ListByCircuit(ctx context.Context, circuitID string, opts *zayo.RequestOptions) (*zayo.ListResponse[zayo.Impact], error) {
	circuitID = zayo.FormatCircuitID(circuitID)
	if circuitID == "" {
		return nil, zayo.ErrCircuitIDRequired
	}

	return c.List(ctx, opts.Clone().WithFilter(zayo.FieldCircuitID, circuitID))
}

var _ zayo.ImpactsClient = (*ImpactsClient)(nil)
