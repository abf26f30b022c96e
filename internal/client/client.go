// Package client implements zayo.Client on top of the authenticated
// transport, the paginator and the record cache.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/zayo-client/internal/auth"
	"github.com/fivetwenty-io/zayo-client/internal/cache"
	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/internal/http"
	"github.com/fivetwenty-io/zayo-client/internal/logging"
	"github.com/fivetwenty-io/zayo-client/internal/pagination"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// Client implements the zayo.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	paginator    *pagination.Paginator
	cache        cache.Cache
	cacheTTL     time.Duration
	routes       zayo.Routes
	logger       zayo.Logger

	notificationConcurrency int
	expiryWarning           sync.Once

	// Resource clients
	cases         *CasesClient
	impacts       *ImpactsClient
	notifications *NotificationsClient
	services      *ServicesClient
}

// New authenticates with the configured credentials and creates a client.
// config must already carry defaults (see zayo.Config.WithDefaults).
func New(ctx context.Context, config *zayo.Config) (*Client, error) {
	token, err := auth.Authenticate(ctx, &auth.OAuth2Config{
		TokenURL:     config.AuthURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Timeout:      config.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}

	store, err := newCache(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating record cache: %w", err)
	}

	return NewWithTokenManager(config, auth.NewSingleShotTokenManager(token), store), nil
}

// NewWithTokenManager creates a client around an existing token manager and
// cache. A nil cache disables caching.
func NewWithTokenManager(config *zayo.Config, tokenManager auth.TokenManager, store cache.Cache) *Client {
	logger := config.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	if store == nil {
		store = cache.NewNoOpCache()
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, createHTTPClientOptions(config, logger)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		paginator: pagination.New(httpClient, pagination.Config{
			MaxTopCount:      config.MaxTopCount,
			MaxConcurrency:   config.MaxConcurrency,
			PageTimeout:      config.PageTimeout,
			FetchTimeout:     config.FetchTimeout,
			RetryMaxAttempts: config.RetryMaxAttempts,
			RetryMultiplier:  config.RetryMultiplier,
			RetryMaxWait:     config.RetryMaxWait,
			Logger:           logger,
		}),
		cache:                   store,
		cacheTTL:                config.Cache.TTL,
		routes:                  config.Routes,
		logger:                  logger,
		notificationConcurrency: constants.DefaultNotificationConcurrency,
	}

	client.initializeResourceClients()

	logger.Debug("client created", map[string]interface{}{
		"base_url":        httpClient.BaseURL(),
		"max_concurrency": config.MaxConcurrency,
	})

	return client
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *zayo.Config, logger zayo.Logger) []http.Option {
	httpOpts := []http.Option{http.WithLogger(logger)}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.HTTPRetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.HTTPRetryMax, config.HTTPRetryWaitMin, config.HTTPRetryWaitMax))
	}

	return httpOpts
}

func newCache(ctx context.Context, config *zayo.Config) (cache.Cache, error) {
	cacheType, err := cache.ParseType(config.Cache.Type)
	if err != nil {
		return nil, err
	}

	cfg := cache.Config{
		Type:       cacheType,
		TTL:        config.Cache.TTL,
		MaxEntries: config.Cache.MaxEntries,
	}

	if config.Cache.NATSURL != "" {
		cfg.NATS = &cache.NATSKVConfig{URL: config.Cache.NATSURL, Bucket: config.Cache.NATSBucket}
	}

	if config.Cache.RedisAddr != "" {
		cfg.Redis = &cache.RedisConfig{
			Addr:     config.Cache.RedisAddr,
			Password: config.Cache.RedisPassword,
			DB:       config.Cache.RedisDB,
		}
	}

	return cache.New(ctx, cfg)
}

func (c *Client) initializeResourceClients() {
	c.cases = NewCasesClient(c)
	c.impacts = NewImpactsClient(c)
	c.notifications = NewNotificationsClient(c)
	c.services = NewServicesClient(c)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Close releases the record cache.
func (c *Client) Close() error {
	return c.cache.Close()
}

// Cases implements zayo.Client.Cases.
func (c *Client) Cases() zayo.CasesClient {
	return c.cases
}

// Impacts implements zayo.Client.Impacts.
func (c *Client) Impacts() zayo.ImpactsClient {
	return c.impacts
}

// Notifications implements zayo.Client.Notifications.
func (c *Client) Notifications() zayo.NotificationsClient {
	return c.notifications
}

// Services implements zayo.Client.Services.
func (c *Client) Services() zayo.ServicesClient {
	return c.services
}

// warnIfTokenExpired logs once when the single login has outlived its token.
// Requests still go out; the API answers 401.
func (c *Client) warnIfTokenExpired() {
	manager, ok := c.tokenManager.(*auth.SingleShotTokenManager)
	if !ok || !manager.Expired() {
		return
	}

	c.expiryWarning.Do(func() {
		c.logger.Warn("access token expired; create a new client to log in again", map[string]interface{}{
			"expired_at": manager.ExpiresAt().Format(time.RFC3339),
		})
	})
}

var _ zayo.Client = (*Client)(nil)
