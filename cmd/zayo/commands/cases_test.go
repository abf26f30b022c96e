package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

func TestNewCasesCommand(t *testing.T) {
	cmd := NewCasesCommand()
	assert.Equal(t, "cases", cmd.Use)
	assert.Equal(t, []string{"case", "mtc"}, cmd.Aliases)
	assert.Equal(t, "Maintenance cases", cmd.Short)

	// Check subcommands are added
	assert.Len(t, cmd.Commands(), 2)
	assert.NotNil(t, findSubcommand(cmd, "list"))
	assert.NotNil(t, findSubcommand(cmd, "show-details"))
}

func TestCasesListCommand_Flags(t *testing.T) {
	cmd := newCasesListCommand()
	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	flags := []string{"circuit-id", "all", "page-size", "limit"}
	for _, flagName := range flags {
		flag := cmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "Flag %s should exist", flagName)
	}

	assert.Equal(t, "50", cmd.Flags().Lookup("page-size").DefValue)
	assert.Equal(t, "false", cmd.Flags().Lookup("all").DefValue)
}

func TestCasesShowDetailsCommand_Flags(t *testing.T) {
	cmd := newCasesShowDetailsCommand()
	assert.Equal(t, "show-details CASE_NUMBER", cmd.Use)
	assert.NotNil(t, cmd.Args)

	saveFlag := cmd.Flags().Lookup("save-emails")
	require.NotNil(t, saveFlag)
	assert.Equal(t, "E", saveFlag.Shorthand)
	assert.Equal(t, "false", saveFlag.DefValue)
	assert.Equal(t, ".", cmd.Flags().Lookup("dir").DefValue)
}

func TestCasesList_HidesClosed(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	stdout, _, err := execute(t, NewCasesCommand(), "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cases (2)")
	assert.Contains(t, stdout, "TTN-0001")
	assert.Contains(t, stdout, "TTN-0003")
	assert.NotContains(t, stdout, "TTN-0002")
	assert.Equal(t, int32(1), atomic.LoadInt32(env.authCalls))
}

func TestCasesList_All(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	stdout, _, err := execute(t, NewCasesCommand(), "list", "--all")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Cases (3)")
	assert.Contains(t, stdout, "TTN-0002")
}

func TestCasesList_ByCircuit(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	stdout, _, err := execute(t, NewCasesCommand(), "list", "--circuit-id", "ogyx/300//zyo")
	require.NoError(t, err)

	assert.Contains(t, stdout, "TTN-0003")
	assert.NotContains(t, stdout, "TTN-0001")
}

func TestCasesList_LimitCountsOpenCases(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	// TTN-0002 is closed and sits between the two open cases.
	stdout, _, err := execute(t, NewCasesCommand(), "list", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cases (2)")
	assert.Contains(t, stdout, "TTN-0001")
	assert.Contains(t, stdout, "TTN-0003")

	stdout, _, err = execute(t, NewCasesCommand(), "list", "--all", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "TTN-0001")
	assert.NotContains(t, stdout, "TTN-0002")
}

func TestCasesList_LimitAppliesAfterCircuitMatch(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	// The only case on this circuit is the last one listed.
	stdout, _, err := execute(t, NewCasesCommand(), "list", "--circuit-id", "OGYX/300//ZYO", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "TTN-0003")
	assert.NotContains(t, stdout, "No cases found")
}

func TestCasesList_Empty(t *testing.T) {
	setupCLI(t)

	stdout, _, err := execute(t, NewCasesCommand(), "list")
	require.NoError(t, err)
	assert.Equal(t, "No cases found\n", stdout)
}

func TestCasesList_JSON(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)
	viper.Set(KeyOutput, "json")

	stdout, _, err := execute(t, NewCasesCommand(), "list")
	require.NoError(t, err)

	var list zayo.ListResponse[zayo.Case]

	requireJSON(t, stdout, &list)
	require.Len(t, list.Records, 2)
	assert.Equal(t, "TTN-0001", list.Records[0].CaseNumber)
	assert.Equal(t, 3, list.Pagination.TotalRecords)
}

func TestCasesList_UnknownOutput(t *testing.T) {
	setupCLI(t)
	viper.Set(KeyOutput, "xml")

	_, _, err := execute(t, NewCasesCommand(), "list")
	require.ErrorIs(t, err, ErrUnknownOutputFormat)
}

func TestCasesList_MissingCredentials(t *testing.T) {
	env := setupCLI(t)
	viper.Set(KeyClientID, "")

	_, _, err := execute(t, NewCasesCommand(), "list")
	require.Error(t, err)
	assert.True(t, zayo.IsConfigError(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(env.authCalls))
}

func TestCasesShowDetails(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	stdout, _, err := execute(t, NewCasesCommand(), "show-details", "TTN-0001")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Case TTN-0001: Found")
	assert.Contains(t, stdout, "Impacts (2)")
	assert.Contains(t, stdout, "OGYX/100//ZYO")
	assert.Contains(t, stdout, "Notifications (2)")
	assert.Contains(t, stdout, "Planned work")
}

func TestCasesShowDetails_NotFound(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	stdout, _, err := execute(t, NewCasesCommand(), "show-details", "TTN-9999")
	require.NoError(t, err)
	assert.Equal(t, "Case TTN-9999: Not found\n", stdout)
}

func TestCasesShowDetails_SaveEmails(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)

	dir := filepath.Join(t.TempDir(), "emails")

	stdout, _, err := execute(t, NewCasesCommand(), "show-details", "TTN-0001", "-E", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Email saved: "+filepath.Join(dir, "TTN-0001-N1.html"))

	body, err := os.ReadFile(filepath.Join(dir, "TTN-0001-N2.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>two</p>", string(body))
}

func TestCasesShowDetails_YAML(t *testing.T) {
	env := setupCLI(t)
	seedCases(env.fake)
	viper.Set(KeyOutput, "yaml")

	stdout, _, err := execute(t, NewCasesCommand(), "show-details", "TTN-0003")
	require.NoError(t, err)

	assert.Contains(t, stdout, "found: true")
	assert.Contains(t, stdout, "case_number: TTN-0003")
}

func TestSaveEmails_NotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	err := saveEmails(&bytes.Buffer{}, file, []zayo.NotificationDetail{{Name: "N1"}})
	require.ErrorIs(t, err, constants.ErrNotDirectory)
}

func TestEmailFileName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{name: "TTN-0001-N1", want: "TTN-0001-N1.html"},
		{name: "  spaced  ", want: "spaced.html"},
		{name: "", wantErr: ErrInvalidEmailName},
		{name: "..", wantErr: constants.ErrDirectoryTraversalDetected},
		{name: "../escape", wantErr: constants.ErrDirectoryTraversalDetected},
		{name: `dir\file`, wantErr: constants.ErrDirectoryTraversalDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := emailFileName(tt.name)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
