package zayo

import (
	"context"
	"strings"
	"time"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
)

// Client is the main interface for the Zayo service-management API.
type Client interface {
	Cases() CasesClient
	Impacts() ImpactsClient
	Notifications() NotificationsClient
	Services() ServicesClient
	// Close releases the record cache connection, if any.
	Close() error
}

// CasesClient defines operations for maintenance cases.
type CasesClient interface {
	List(ctx context.Context, opts *RequestOptions) (*ListResponse[Case], error)
	Get(ctx context.Context, caseNumber string) (*Case, error)
	Details(ctx context.Context, caseNumber string) (*CaseDetails, error)
	ListByCircuit(ctx context.Context, circuitID string, opts *RequestOptions) (*ListResponse[Case], error)
}

// ImpactsClient defines operations for maintenance impacts.
type ImpactsClient interface {
	List(ctx context.Context, opts *RequestOptions) (*ListResponse[Impact], error)
	ListByCase(ctx context.Context, caseNumber string) (*ListResponse[Impact], error)
	ListByCircuit(ctx context.Context, circuitID string, opts *RequestOptions) (*ListResponse[Impact], error)
}

// NotificationsClient defines operations for case notifications.
type NotificationsClient interface {
	ListByCase(ctx context.Context, caseNumber string) ([]Notification, error)
	Get(ctx context.Context, name string) (*NotificationDetail, error)
}

// ServicesClient defines operations for the service inventory.
type ServicesClient interface {
	List(ctx context.Context, opts *RequestOptions) (*ListResponse[Service], error)
	GetByCircuit(ctx context.Context, circuitID string, opts *RequestOptions) (*Service, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Routes holds the API paths, relative to BaseURL.
type Routes struct {
	Cases               string
	Impacts             string
	NotificationsByCase string // fmt pattern taking the case number
	NotificationByName  string // fmt pattern taking the notification name
	Services            string
}

// CacheConfig selects the record cache backend. Notification details are
// the only records cached since they never change once sent.
type CacheConfig struct {
	// Type: "memory", "nats", "redis" or "none" (default).
	Type string
	// TTL: lifetime of a cached record.
	TTL time.Duration
	// MaxEntries: memory backend size limit.
	MaxEntries int
	// NATSURL and NATSBucket configure the JetStream KV backend.
	NATSURL    string
	NATSBucket string
	// RedisAddr, RedisPassword and RedisDB configure the Redis backend.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Config represents client configuration for building a zayo.Client.
//
// # Authentication
//
// ClientID and ClientSecret are exchanged once, at construction, for a bearer
// token using the OAuth2 client_credentials grant against AuthURL. The token
// is never refreshed: a client that outlives its token sees 401 responses,
// reported as UpstreamError and matched by IsUnauthorized. Build a new client
// to log in again.
//
// # Pagination and retries
//
// List calls are split into pages of at most MaxTopCount records and fetched
// with up to MaxConcurrency requests in flight. A page attempt that exceeds
// PageTimeout, or fails with a network timeout, is retried up to
// RetryMaxAttempts times with randomized exponential backoff
// (RetryMultiplier, capped at RetryMaxWait). Other failures are not retried.
// FetchTimeout bounds one whole list call; zero disables it.
//
// The transport itself does not retry. HTTPRetryMax enables the
// library-level retry of 5xx and 429 responses for callers that want it.
type Config struct {
	// ClientID: OAuth2 client ID. Required.
	ClientID string
	// ClientSecret: OAuth2 client secret. Required.
	ClientSecret string
	// AuthURL: full OAuth2 token endpoint.
	AuthURL string
	// BaseURL: service-management API root. A trailing slash is added if missing.
	BaseURL string
	// Routes: resource paths under BaseURL.
	Routes Routes

	// MaxTopCount: page size ceiling enforced by the API.
	MaxTopCount int
	// MaxConcurrency: page requests in flight per list call.
	MaxConcurrency int
	// PageTimeout: deadline for one page attempt.
	PageTimeout time.Duration
	// FetchTimeout: deadline for a whole list call. Zero disables it.
	FetchTimeout time.Duration
	// RetryMaxAttempts: attempts per page, including the first.
	RetryMaxAttempts int
	// RetryMultiplier: base of the exponential backoff.
	RetryMultiplier time.Duration
	// RetryMaxWait: cap on a single backoff wait.
	RetryMaxWait time.Duration

	// HTTPTimeout: http.Client timeout for every request.
	HTTPTimeout time.Duration
	// HTTPRetryMax: transport-level retries for 5xx/429. Zero disables them.
	HTTPRetryMax int
	// HTTPRetryWaitMin and HTTPRetryWaitMax bound transport-level retry waits.
	HTTPRetryWaitMin time.Duration
	HTTPRetryWaitMax time.Duration

	// Cache: optional record cache.
	Cache CacheConfig

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by every layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
}

// DefaultConfig returns a Config populated with production endpoints and
// limits. Credentials are left empty.
func DefaultConfig() *Config {
	return &Config{
		AuthURL: constants.DefaultAuthURL,
		BaseURL: constants.DefaultBaseURL,
		Routes: Routes{
			Cases:               constants.RouteCases,
			Impacts:             constants.RouteImpacts,
			NotificationsByCase: constants.RouteNotificationsByCase,
			NotificationByName:  constants.RouteNotificationByName,
			Services:            constants.RouteServices,
		},
		MaxTopCount:      constants.MaxTopCount,
		MaxConcurrency:   constants.DefaultMaxConcurrency,
		PageTimeout:      constants.DefaultPageTimeout,
		FetchTimeout:     constants.DefaultFetchTimeout,
		RetryMaxAttempts: constants.DefaultPageRetryAttempts,
		RetryMultiplier:  constants.DefaultRetryMultiplier,
		RetryMaxWait:     constants.DefaultRetryWaitMax,
		HTTPTimeout:      constants.DefaultHTTPTimeout,
		HTTPRetryWaitMin: constants.DefaultHTTPRetryWaitMin,
		HTTPRetryWaitMax: constants.DefaultHTTPRetryWaitMax,
		Cache: CacheConfig{
			Type:       "none",
			TTL:        constants.DefaultCacheTTL,
			MaxEntries: constants.DefaultCacheSize,
			NATSBucket: constants.DefaultNATSBucket,
		},
		UserAgent: constants.DefaultUserAgent,
	}
}

// Validate checks the fields that must be present before any network call.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ClientID) == "":
		return &ConfigError{Key: constants.EnvClientID}
	case strings.TrimSpace(c.ClientSecret) == "":
		return &ConfigError{Key: constants.EnvClientSecret}
	case c.AuthURL == "":
		return &ConfigError{Key: "auth_url"}
	case c.BaseURL == "":
		return &ConfigError{Key: "base_url"}
	case c.MaxTopCount < 0:
		return &ConfigError{Key: "max_top_count", Reason: "must not be negative"}
	}

	return nil
}

// WithDefaults returns a copy of c with zero-valued fields filled from
// DefaultConfig.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	out := *c

	if out.AuthURL == "" {
		out.AuthURL = def.AuthURL
	}

	if out.BaseURL == "" {
		out.BaseURL = def.BaseURL
	}

	if !strings.HasSuffix(out.BaseURL, "/") {
		out.BaseURL += "/"
	}

	out.Routes = mergeRoutes(out.Routes, def.Routes)

	if out.MaxTopCount == 0 || out.MaxTopCount > constants.MaxTopCount {
		out.MaxTopCount = def.MaxTopCount
	}

	if out.MaxConcurrency <= 0 {
		out.MaxConcurrency = def.MaxConcurrency
	}

	if out.PageTimeout <= 0 {
		out.PageTimeout = def.PageTimeout
	}

	if out.RetryMaxAttempts <= 0 {
		out.RetryMaxAttempts = def.RetryMaxAttempts
	}

	if out.RetryMultiplier <= 0 {
		out.RetryMultiplier = def.RetryMultiplier
	}

	if out.RetryMaxWait <= 0 {
		out.RetryMaxWait = def.RetryMaxWait
	}

	if out.HTTPTimeout <= 0 {
		out.HTTPTimeout = def.HTTPTimeout
	}

	if out.HTTPRetryWaitMin <= 0 {
		out.HTTPRetryWaitMin = def.HTTPRetryWaitMin
	}

	if out.HTTPRetryWaitMax <= 0 {
		out.HTTPRetryWaitMax = def.HTTPRetryWaitMax
	}

	if out.Cache.Type == "" {
		out.Cache.Type = def.Cache.Type
	}

	if out.Cache.TTL <= 0 {
		out.Cache.TTL = def.Cache.TTL
	}

	if out.Cache.MaxEntries <= 0 {
		out.Cache.MaxEntries = def.Cache.MaxEntries
	}

	if out.Cache.NATSBucket == "" {
		out.Cache.NATSBucket = def.Cache.NATSBucket
	}

	if out.UserAgent == "" {
		out.UserAgent = def.UserAgent
	}

	return &out
}

func mergeRoutes(r, def Routes) Routes {
	if r.Cases == "" {
		r.Cases = def.Cases
	}

	if r.Impacts == "" {
		r.Impacts = def.Impacts
	}

	if r.NotificationsByCase == "" {
		r.NotificationsByCase = def.NotificationsByCase
	}

	if r.NotificationByName == "" {
		r.NotificationByName = def.NotificationByName
	}

	if r.Services == "" {
		r.Services = def.Services
	}

	return r
}
