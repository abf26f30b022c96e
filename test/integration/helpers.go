//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	BaseURL      string
	ZayoPath     string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ClientID:     os.Getenv("ZAYO_CLIENT_ID"),
		ClientSecret: os.Getenv("ZAYO_CLIENT_SECRET"),
		AuthURL:      os.Getenv("ZAYO_AUTH_URL"),
		BaseURL:      os.Getenv("ZAYO_BASE_URL"),
		ZayoPath:     getZayoPath(),
		Verbose:      os.Getenv("ZAYO_VERBOSE") == "true",
	}
}

// getZayoPath determines the path to the zayo binary
func getZayoPath() string {
	if path := os.Getenv("ZAYO_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../zayo",
		"./zayo",
		"../zayo",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "zayo"
}

// SkipIfMissingCredentials skips a test when no API credentials are set.
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()

	if config.ClientID == "" || config.ClientSecret == "" {
		t.Skip("ZAYO_CLIENT_ID or ZAYO_CLIENT_SECRET not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips a test when the zayo binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.ZayoPath); err != nil {
		t.Skipf("zayo binary not found at %s, skipping integration test", config.ZayoPath)
	}
}

// CommandRunner provides utilities for running zayo commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a zayo command and returns output. Credentials reach the
// binary through the inherited environment.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.ZayoPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.ZayoPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
