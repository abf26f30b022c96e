package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
)

// Config represents the CLI configuration file.
type Config struct {
	ClientID       string `json:"client_id,omitempty"       yaml:"client_id,omitempty"`
	ClientSecret   string `json:"client_secret,omitempty"   yaml:"client_secret,omitempty"`
	AuthURL        string `json:"auth_url,omitempty"        yaml:"auth_url,omitempty"`
	BaseURL        string `json:"base_url,omitempty"        yaml:"base_url,omitempty"`
	Output         string `json:"output,omitempty"          yaml:"output,omitempty"`
	NoColor        bool   `json:"no_color"                  yaml:"no_color"`
	LogLevel       string `json:"log_level,omitempty"       yaml:"log_level,omitempty"`
	Cache          string `json:"cache,omitempty"           yaml:"cache,omitempty"`
	CacheTTL       string `json:"cache_ttl,omitempty"       yaml:"cache_ttl,omitempty"`
	NATSURL        string `json:"nats_url,omitempty"        yaml:"nats_url,omitempty"`
	RedisAddr      string `json:"redis_addr,omitempty"      yaml:"redis_addr,omitempty"`
	RedisPassword  string `json:"redis_password,omitempty"  yaml:"redis_password,omitempty"`
	MaxConcurrency int    `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the zayo CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment and config file; secrets are masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			config := loadConfig()
			config.ClientSecret = maskSecret(config.ClientSecret)
			config.RedisPassword = maskSecret(config.RedisPassword)

			if format != constants.FormatTable {
				return renderStructured(cmd.OutOrStdout(), format, config)
			}

			return displayConfigTable(cmd.OutOrStdout(), config)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Write a configuration value to the config file ($HOME/.zayo/config.yml by default)",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := readConfigFile(path)
			if err != nil {
				return err
			}

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			if err := saveConfigStruct(path, config); err != nil {
				return err
			}

			value := args[1]
			if args[0] == KeyClientSecret || args[0] == KeyRedisPassword {
				value = maskSecret(value)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s in %s\n", args[0], value, path)

			return nil
		},
	}
}

// loadConfig returns the effective configuration as viper resolves it.
func loadConfig() *Config {
	return &Config{
		ClientID:       viper.GetString(KeyClientID),
		ClientSecret:   viper.GetString(KeyClientSecret),
		AuthURL:        viper.GetString(KeyAuthURL),
		BaseURL:        viper.GetString(KeyBaseURL),
		Output:         viper.GetString(KeyOutput),
		NoColor:        viper.GetBool(KeyNoColor),
		LogLevel:       viper.GetString(KeyLogLevel),
		Cache:          viper.GetString(KeyCache),
		CacheTTL:       viper.GetString(KeyCacheTTL),
		NATSURL:        viper.GetString(KeyNATSURL),
		RedisAddr:      viper.GetString(KeyRedisAddr),
		RedisPassword:  viper.GetString(KeyRedisPassword),
		MaxConcurrency: viper.GetInt(KeyMaxConcurrency),
	}
}

func setConfigValue(config *Config, key, value string) error {
	strFields := map[string]*string{
		KeyClientID:      &config.ClientID,
		KeyClientSecret:  &config.ClientSecret,
		KeyAuthURL:       &config.AuthURL,
		KeyBaseURL:       &config.BaseURL,
		KeyOutput:        &config.Output,
		KeyLogLevel:      &config.LogLevel,
		KeyCache:         &config.Cache,
		KeyCacheTTL:      &config.CacheTTL,
		KeyNATSURL:       &config.NATSURL,
		KeyRedisAddr:     &config.RedisAddr,
		KeyRedisPassword: &config.RedisPassword,
	}

	if field, ok := strFields[key]; ok {
		*field = value

		return nil
	}

	switch key {
	case KeyNoColor:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}

		config.NoColor = b
	case KeyMaxConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}

		config.MaxConcurrency = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".zayo", "config.yml"), nil
}

func readConfigFile(path string) (*Config, error) {
	config := &Config{}

	// path is the user's own config file.
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func saveConfigStruct(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	rows := map[string]string{
		KeyClientID:       config.ClientID,
		KeyClientSecret:   config.ClientSecret,
		KeyAuthURL:        config.AuthURL,
		KeyBaseURL:        config.BaseURL,
		KeyOutput:         config.Output,
		KeyNoColor:        strconv.FormatBool(config.NoColor),
		KeyLogLevel:       config.LogLevel,
		KeyCache:          config.Cache,
		KeyCacheTTL:       config.CacheTTL,
		KeyNATSURL:        config.NATSURL,
		KeyRedisAddr:      config.RedisAddr,
		KeyRedisPassword:  config.RedisPassword,
		KeyMaxConcurrency: strconv.Itoa(config.MaxConcurrency),
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, k := range keys {
		value := rows[k]
		if value == "" {
			value = constants.None
		}

		_ = table.Append(k, value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
