package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// EmailDirPerm is the permission for directories holding saved emails.
	EmailDirPerm = 0755

	// EmailFilePerm is the permission for saved notification emails.
	EmailFilePerm = 0644
)

// CLI argument counts.
const (
	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2
)

// API endpoints.
const (
	// DefaultAuthURL is the OAuth client-credentials token endpoint.
	DefaultAuthURL = "https://auth.testzayo.com/oauth/token"

	// DefaultBaseURL is the service-management API root.
	DefaultBaseURL = "https://api.zayo.com/services/service-management/v1/"

	// DefaultScope is the OAuth scope requested at login.
	DefaultScope = "openid"
)

// API routes, relative to the base URL.
const (
	// RouteCases lists maintenance cases.
	RouteCases = "maintenance-cases"

	// RouteImpacts lists maintenance impacts.
	RouteImpacts = "maintenance-impacts"

	// RouteNotificationsByCase lists notification headers for a case.
	RouteNotificationsByCase = "maintenance-cases/%s/notifications"

	// RouteNotificationByName fetches a single notification.
	RouteNotificationByName = "maintenance-cases/notifications/%s"

	// RouteServices lists the service inventory.
	RouteServices = "existing-services"
)

// Environment variables.
const (
	// EnvPrefix is the viper environment prefix.
	EnvPrefix = "ZAYO"

	// EnvClientID holds the OAuth client ID.
	EnvClientID = "ZAYO_CLIENT_ID"

	// EnvClientSecret holds the OAuth client secret.
	EnvClientSecret = "ZAYO_CLIENT_SECRET"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPageTimeout bounds a single page attempt.
	DefaultPageTimeout = 30 * time.Second

	// DefaultFetchTimeout bounds one whole list call.
	DefaultFetchTimeout = 2 * time.Minute

	// DefaultAuthTimeout bounds the token exchange.
	DefaultAuthTimeout = 15 * time.Second
)

// Pagination limits.
const (
	// MaxTopCount is the largest page the API will serve.
	MaxTopCount = 50

	// DefaultMaxConcurrency bounds in-flight page requests.
	DefaultMaxConcurrency = 8

	// DefaultNotificationConcurrency bounds parallel notification lookups.
	DefaultNotificationConcurrency = 4
)

// Retry limits.
const (
	// DefaultPageRetryAttempts is the number of attempts per page.
	DefaultPageRetryAttempts = 5

	// DefaultRetryMultiplier scales the exponential backoff.
	DefaultRetryMultiplier = 1 * time.Second

	// DefaultRetryWaitMax caps a single backoff wait.
	DefaultRetryWaitMax = 10 * time.Second

	// DefaultHTTPRetryWaitMin is the transport's minimum retry wait when enabled.
	DefaultHTTPRetryWaitMin = 1 * time.Second

	// DefaultHTTPRetryWaitMax is the transport's maximum retry wait when enabled.
	DefaultHTTPRetryWaitMax = 30 * time.Second

	// ExponentialBackoffBase is the base for exponential backoff.
	ExponentialBackoffBase = 2

	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second
)

// Cache settings.
const (
	// DefaultCacheSize is the default memory cache entry limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultNATSBucket is the JetStream KV bucket for cached records.
	DefaultNATSBucket = "zayo-records"

	// DefaultRedisPrefix namespaces cache keys in Redis.
	DefaultRedisPrefix = "zayo:"

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// None is used when no value is present.
	None = "none"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// LocationColumnWidth wraps the case location column.
	LocationColumnWidth = 12
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)

// Date layouts used by the API.
const (
	// DateLayout is the layout of primaryDate fields.
	DateLayout = "2006-01-02"

	// DateTimeLayout is the layout of notification timestamps.
	DateTimeLayout = time.RFC3339
)

// Default user agent.
const (
	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "zayo-client-go/1.0"
)
