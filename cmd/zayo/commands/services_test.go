package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

func seedServices(env *cliEnv) {
	locations := []zayo.ServiceLocation{
		{Name: "Zayo Denver", City: "Denver", State: "CO", PostalCode: "80202"},
		{Name: "Zayo Chicago", City: "Chicago", State: "IL", PostalCode: "60601"},
	}

	env.fake.AddRecords("existing-services",
		zayo.Service{
			ServiceName: "Wave A", Status: "active", ProductGroup: "Waves", ProductCategory: "Metro",
			Components: []zayo.ServiceComponent{{CircuitID: "OGYX/100//ZYO", Bandwidth: "10G", Locations: locations}},
		},
		zayo.Service{
			ServiceName: "Wave B", Status: "pending_change", ProductGroup: "Waves", ProductCategory: "Long Haul",
			Components: []zayo.ServiceComponent{{CircuitID: "OGYX/200//ZYO", Bandwidth: "100G", Locations: locations[:1]}},
		},
	)
}

func TestNewServicesCommand(t *testing.T) {
	cmd := NewServicesCommand()
	assert.Equal(t, "services", cmd.Use)
	assert.Equal(t, []string{"service", "svc"}, cmd.Aliases)

	assert.Len(t, cmd.Commands(), 2)
	assert.NotNil(t, findSubcommand(cmd, "list"))

	circuit := findSubcommand(cmd, "circuit")
	require.NotNil(t, circuit)
	assert.Equal(t, "circuit CIRCUIT_ID", circuit.Use)
	assert.NotNil(t, findSubcommand(cmd, "list").Flags().Lookup("status"))
}

func TestServicesList(t *testing.T) {
	env := setupCLI(t)
	seedServices(env)

	stdout, _, err := execute(t, NewServicesCommand(), "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Services (2)")
	assert.Contains(t, stdout, "Wave A")
	assert.Contains(t, stdout, "Chicago, IL 60601")
	assert.Contains(t, stdout, "N/A")
}

func TestServicesList_Status(t *testing.T) {
	env := setupCLI(t)
	seedServices(env)
	viper.Set(KeyOutput, "json")

	stdout, _, err := execute(t, NewServicesCommand(), "list", "--status", "pending_change")
	require.NoError(t, err)

	var list zayo.ListResponse[zayo.Service]

	requireJSON(t, stdout, &list)
	require.Len(t, list.Records, 1)
	assert.Equal(t, "Wave B", list.Records[0].ServiceName)
}

func TestServicesCircuit(t *testing.T) {
	env := setupCLI(t)
	seedServices(env)

	stdout, _, err := execute(t, NewServicesCommand(), "circuit", "ogyx/100//zyo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Service\n")
	assert.Contains(t, stdout, "Wave A")
	assert.NotContains(t, stdout, "Wave B")
}

func TestServicesCircuit_NotFound(t *testing.T) {
	env := setupCLI(t)
	seedServices(env)

	stdout, _, err := execute(t, NewServicesCommand(), "circuit", "OGYX/999//ZYO")
	require.NoError(t, err)
	assert.Equal(t, "Circuit not found: OGYX/999//ZYO\n", stdout)
}
