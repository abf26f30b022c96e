package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/internal/logging"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
	"github.com/fivetwenty-io/zayo-client/pkg/zayoclient"
)

// Configuration keys. Each resolves from a flag, ZAYO_<KEY> or the config file.
const (
	KeyClientID       = "client_id"
	KeyClientSecret   = "client_secret"
	KeyAuthURL        = "auth_url"
	KeyBaseURL        = "base_url"
	KeyOutput         = "output"
	KeyVerbose        = "verbose"
	KeyNoColor        = "no_color"
	KeyLogLevel       = "log_level"
	KeyCache          = "cache"
	KeyCacheTTL       = "cache_ttl"
	KeyNATSURL        = "nats_url"
	KeyRedisAddr      = "redis_addr"
	KeyRedisPassword  = "redis_password"
	KeyRedisDB        = "redis_db"
	KeyMaxConcurrency = "max_concurrency"
	KeyPageTimeout    = "page_timeout"
	KeyFetchTimeout   = "fetch_timeout"
)

// Common static errors used throughout the commands package.
var (
	ErrUnknownOutputFormat = constants.ErrInvalidOutput
	ErrUnknownConfigKey    = constants.ErrUnknownConfigKey
	ErrInvalidEmailName    = errors.New("notification name is not a valid file name")
)

// clientFactory builds the API client for a command. Tests replace it.
var clientFactory = func(ctx context.Context) (zayo.Client, error) {
	return zayoclient.New(ctx, buildClientConfig())
}

// buildClientConfig assembles a zayo.Config from viper. Zero values are
// filled in by zayoclient.New.
func buildClientConfig() *zayo.Config {
	config := zayo.DefaultConfig()
	config.ClientID = viper.GetString(KeyClientID)
	config.ClientSecret = viper.GetString(KeyClientSecret)

	if v := viper.GetString(KeyAuthURL); v != "" {
		config.AuthURL = v
	}

	if v := viper.GetString(KeyBaseURL); v != "" {
		config.BaseURL = v
	}

	if v := viper.GetInt(KeyMaxConcurrency); v > 0 {
		config.MaxConcurrency = v
	}

	if v := viper.GetDuration(KeyPageTimeout); v > 0 {
		config.PageTimeout = v
	}

	if v := viper.GetDuration(KeyFetchTimeout); v > 0 {
		config.FetchTimeout = v
	}

	if v := viper.GetString(KeyCache); v != "" {
		config.Cache.Type = v
	}

	if v := viper.GetDuration(KeyCacheTTL); v > 0 {
		config.Cache.TTL = v
	}

	config.Cache.NATSURL = viper.GetString(KeyNATSURL)
	config.Cache.RedisAddr = viper.GetString(KeyRedisAddr)
	config.Cache.RedisPassword = viper.GetString(KeyRedisPassword)
	config.Cache.RedisDB = viper.GetInt(KeyRedisDB)

	config.Debug = viper.GetBool(KeyVerbose)
	config.Logger = logging.NewAdapter(setupLogger())

	return config
}

func setupLogger() zerolog.Logger {
	level := logging.LogLevel(viper.GetString(KeyLogLevel))
	if level == "" {
		level = logging.LevelWarn
	}

	if viper.GetBool(KeyVerbose) {
		level = logging.LevelDebug
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.NoColor = viper.GetBool(KeyNoColor)

	logging.Setup(cfg)

	return logging.NewLogger("cli")
}

// withClient creates a client, runs fn and closes the client.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client zayo.Client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := clientFactory(ctx)
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	return fn(ctx, client)
}

// outputFormat returns the requested output format, defaulting to table.
func outputFormat() (string, error) {
	output := strings.ToLower(viper.GetString(KeyOutput))

	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownOutputFormat, output)
	}
}

// renderStructured writes data as JSON or YAML.
func renderStructured(w io.Writer, format string, data any) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding data to JSON: %w", err)
		}
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(constants.JSONIndentSize)

		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encoding data to YAML: %w", err)
		}

		return encoder.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutputFormat, format)
	}

	return nil
}

// configureColor turns colour off for --no-color or when w is not a terminal.
func configureColor(w io.Writer) {
	color.NoColor = viper.GetBool(KeyNoColor) || !isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// warnIncomplete tells the user that some pages could not be fetched.
func warnIncomplete(w io.Writer, failed []zayo.PageFailure) {
	if len(failed) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "Warning: %d page(s) could not be fetched; results are incomplete\n", len(failed))
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return constants.MaskedSecret
}
