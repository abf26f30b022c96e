package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zayo-client/internal/client"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// findSubcommand is a helper function to find a subcommand by name.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, subcmd := range cmd.Commands() {
		if subcmd.Name() == name {
			return subcmd
		}
	}

	return nil
}

type cliEnv struct {
	fake      *client.FakeZayo
	authCalls *int32
}

// setupCLI points viper at a fake token endpoint and a fake API. Tests using
// it share viper's global state and must not run in parallel.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	var calls int32

	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(authServer.Close)

	fake := client.NewFakeZayo(t)

	viper.Set(KeyClientID, "id")
	viper.Set(KeyClientSecret, "secret")
	viper.Set(KeyAuthURL, authServer.URL)
	viper.Set(KeyBaseURL, fake.URL)
	viper.Set(KeyOutput, "table")
	viper.Set(KeyNoColor, true)
	viper.Set(KeyLogLevel, "disabled")

	return &cliEnv{fake: fake, authCalls: &calls}
}

func seedCases(fake *client.FakeZayo) {
	fake.AddRecords("maintenance-cases",
		zayo.Case{CaseNumber: "TTN-0001", Status: "Scheduled", Urgency: "Planned", LevelOfImpact: "Service Affecting", PrimaryDate: "2024-05-01", Location: "Denver, CO"},
		zayo.Case{CaseNumber: "TTN-0002", Status: "Closed", Urgency: "Planned", LevelOfImpact: "Potential Service Affecting", PrimaryDate: "2024-04-01"},
		zayo.Case{CaseNumber: "TTN-0003", Status: "Scheduled", Urgency: "Emergency", LevelOfImpact: "Service Affecting", PrimaryDate: "2024-05-03"},
	)

	fake.AddRecords("maintenance-impacts",
		zayo.Impact{CaseNumber: "TTN-0001", CircuitID: "OGYX/100//ZYO", ExpectedImpact: "Outage", CLLIA: "DNVRCO01", CLLIZ: "CHCGIL02"},
		zayo.Impact{CaseNumber: "TTN-0001", CircuitID: "OGYX/200//ZYO", ExpectedImpact: "Hit"},
		zayo.Impact{CaseNumber: "TTN-0003", CircuitID: "OGYX/300//ZYO", ExpectedImpact: "Outage"},
	)

	fake.AddNotification("TTN-0001", zayo.NotificationDetail{
		Name: "TTN-0001-N1", Type: "Scheduled", Date: "2024-04-20T10:00:00Z",
		EmailSubject: "Planned work", EmailList: "noc@example.com", EmailBody: "<p>one</p>",
	})
	fake.AddNotification("TTN-0001", zayo.NotificationDetail{
		Name: "TTN-0001-N2", Type: "Rescheduled", Date: "2024-04-25T10:00:00Z",
		EmailSubject: "Moved", EmailList: "noc@example.com", EmailBody: "<p>two</p>",
	})
}

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func requireJSON(t *testing.T, data string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(data), v), data)
}
