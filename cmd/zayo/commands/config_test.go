package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.NotNil(t, findSubcommand(cmd, "show"))

	set := findSubcommand(cmd, "set")
	require.NotNil(t, set)
	assert.Equal(t, "set KEY VALUE", set.Use)
}

func TestConfigShow_MasksSecrets(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyClientID, "my-client")
	viper.Set(KeyClientSecret, "s3cret")
	viper.Set(KeyRedisPassword, "hunter2")
	viper.Set(KeyOutput, "json")

	stdout, _, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)

	var config Config

	requireJSON(t, stdout, &config)
	assert.Equal(t, "my-client", config.ClientID)
	assert.Equal(t, "***", config.ClientSecret)
	assert.Equal(t, "***", config.RedisPassword)
	assert.NotContains(t, stdout, "s3cret")
}

func TestConfigShow_Table(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyClientID, "my-client")

	stdout, _, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "my-client")
	assert.Contains(t, stdout, "base_url")
}

func TestConfigSet(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "zayo", "config.yml")
	viper.SetConfigFile(path)

	stdout, _, err := execute(t, NewConfigCommand(), "set", "client_secret", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set client_secret to ***")

	_, _, err = execute(t, NewConfigCommand(), "set", "max_concurrency", "4")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config Config

	require.NoError(t, yaml.Unmarshal(data, &config))
	assert.Equal(t, "s3cret", config.ClientSecret)
	assert.Equal(t, 4, config.MaxConcurrency)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigSet_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetConfigFile(filepath.Join(t.TempDir(), "config.yml"))

	_, _, err := execute(t, NewConfigCommand(), "set", "nope", "x")
	require.ErrorIs(t, err, ErrUnknownConfigKey)

	_, _, err = execute(t, NewConfigCommand(), "set", "no_color", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value for no_color")
}
