package zayoclient

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/zayo-client/internal/client"
	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// New creates a Zayo API client. Zero-valued config fields take their
// defaults; missing credentials fail with a *zayo.ConfigError before any
// network call.
func New(ctx context.Context, config *zayo.Config) (zayo.Client, error) {
	if config == nil {
		return nil, zayo.ErrConfigRequired
	}

	effective := config.WithDefaults()

	if err := effective.Validate(); err != nil {
		return nil, err
	}

	c, err := client.New(ctx, effective)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithClientCredentials creates a client with default endpoints.
func NewWithClientCredentials(ctx context.Context, clientID, clientSecret string) (zayo.Client, error) {
	config := zayo.DefaultConfig()
	config.ClientID = clientID
	config.ClientSecret = clientSecret

	return New(ctx, config)
}

// NewFromEnv creates a client with credentials read from ZAYO_CLIENT_ID and
// ZAYO_CLIENT_SECRET.
func NewFromEnv(ctx context.Context) (zayo.Client, error) {
	return NewWithClientCredentials(ctx, os.Getenv(constants.EnvClientID), os.Getenv(constants.EnvClientSecret))
}
