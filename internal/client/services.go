package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// ServicesClient implements zayo.ServicesClient.
type ServicesClient struct {
	client *Client
}

// NewServicesClient creates a new services client.
func NewServicesClient(client *Client) *ServicesClient {
	return &ServicesClient{client: client}
}

// List implements zayo.ServicesClient.List. Records are deduplicated by
// service name unless opts names another key.
func (c *ServicesClient) List(ctx context.Context, opts *zayo.RequestOptions) (*zayo.ListResponse[zayo.Service], error) {
	list, err := listRecords[zayo.Service](ctx, c.client, c.client.routes.Services, withDedupKey(opts, zayo.FieldServiceName))
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	return list, nil
}

// GetByCircuit implements zayo.ServicesClient.GetByCircuit. The inventory
// cannot be filtered by circuit, so every service matching opts is fetched
// and the first whose leading component carries circuitID wins.
func (c *ServicesClient) GetByCircuit(ctx context.Context, circuitID string, opts *zayo.RequestOptions) (*zayo.Service, error) {
	circuitID = zayo.FormatCircuitID(circuitID)
	if circuitID == "" {
		return nil, zayo.ErrCircuitIDRequired
	}

	list, err := c.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	for i := range list.Records {
		if zayo.FormatCircuitID(list.Records[i].CircuitID()) == circuitID {
			return &list.Records[i], nil
		}
	}

	if list.Incomplete() {
		return nil, fmt.Errorf("finding circuit %s: %w", circuitID, zayo.ErrIncompleteResult)
	}

	return nil, fmt.Errorf("%w: %s", zayo.ErrServiceNotFound, circuitID)
}

var _ zayo.ServicesClient = (*ServicesClient)(nil)
