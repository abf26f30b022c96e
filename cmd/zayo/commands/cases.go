package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// NewCasesCommand creates the cases command group.
func NewCasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cases",
		Aliases: []string{"case", "mtc"},
		Short:   "Maintenance cases",
		Long:    "List maintenance cases and show their impacts and notifications",
	}

	cmd.AddCommand(newCasesListCommand())
	cmd.AddCommand(newCasesShowDetailsCommand())

	return cmd
}

type casesListOptions struct {
	circuitID string
	all       bool
	pageSize  int
	limit     int
}

func newCasesListCommand() *cobra.Command {
	var opts casesListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance cases",
		Long:  "List open maintenance cases ordered by primary date, optionally only those impacting a circuit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client zayo.Client) error {
				return runCasesList(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), client, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.circuitID, "circuit-id", "", "only cases with an impact on this circuit")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include closed cases (ignored with --circuit-id)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", constants.MaxTopCount, "records per page request (max 50)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "maximum number of cases to show, counted after closed cases and the circuit match are filtered out (0 for all)")

	return cmd
}

func runCasesList(ctx context.Context, out, errOut io.Writer, client zayo.Client, opts casesListOptions) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	byCircuit := strings.TrimSpace(opts.circuitID) != ""

	// Only an unfiltered listing can stop fetching early; otherwise the
	// limit is applied to what survives the filters.
	req := zayo.NewRequestOptions().WithOrderBy(zayo.OrderByDateSooner).WithPageSize(opts.pageSize)
	if opts.limit > 0 && opts.all && !byCircuit {
		req = req.WithMaxRecords(opts.limit)
	}

	var list *zayo.ListResponse[zayo.Case]

	if byCircuit {
		list, err = client.Cases().ListByCircuit(ctx, opts.circuitID, req)
	} else {
		list, err = client.Cases().List(ctx, req)
	}

	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	if !opts.all {
		open := make([]zayo.Case, 0, len(list.Records))

		for _, c := range list.Records {
			if !c.IsClosed() {
				open = append(open, c)
			}
		}

		list.Records = open
	}

	if opts.limit > 0 && len(list.Records) > opts.limit {
		list.Records = list.Records[:opts.limit]
	}

	warnIncomplete(errOut, list.Pagination.FailedPages)

	if format != constants.FormatTable {
		return renderStructured(out, format, list)
	}

	if len(list.Records) == 0 {
		_, _ = fmt.Fprintln(out, "No cases found")

		return nil
	}

	configureColor(out)

	return renderCasesTable(out, list.Records, time.Now())
}

type showDetailsOptions struct {
	saveEmails bool
	dir        string
}

func newCasesShowDetailsCommand() *cobra.Command {
	var opts showDetailsOptions

	cmd := &cobra.Command{
		Use:     "show-details CASE_NUMBER",
		Aliases: []string{"details", "show"},
		Short:   "Show case details",
		Long:    "Display a maintenance case with its circuit impacts and notification emails",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client zayo.Client) error {
				return runCasesShowDetails(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), client, args[0], opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.saveEmails, "save-emails", "E", false, "save notification emails as <name>.html")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory for saved emails")

	return cmd
}

func runCasesShowDetails(ctx context.Context, out, errOut io.Writer, client zayo.Client, caseNumber string, opts showDetailsOptions) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	details, err := client.Cases().Details(ctx, caseNumber)
	if err != nil {
		return fmt.Errorf("failed to get case details: %w", err)
	}

	warnIncomplete(errOut, details.FailedPages)

	switch {
	case format != constants.FormatTable:
		if err := renderStructured(out, format, details); err != nil {
			return err
		}
	case !details.Found:
		configureColor(out)
		_, _ = fmt.Fprintf(out, "Case %s: %s\n", caseNumber, color.New(color.FgRed, color.Bold).Sprint("Not found"))

		return nil
	default:
		configureColor(out)

		if err := renderCaseDetails(out, details, time.Now()); err != nil {
			return err
		}
	}

	if opts.saveEmails && details.Found {
		return saveEmails(out, opts.dir, details.Notifications)
	}

	return nil
}

func renderCaseDetails(out io.Writer, details *zayo.CaseDetails, now time.Time) error {
	_, _ = fmt.Fprintf(out, "\nCase %s: %s\n\n", details.Case.CaseNumber, color.New(color.FgGreen, color.Bold).Sprint("Found"))

	if err := renderCasesTable(out, []zayo.Case{*details.Case}, now); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)

	if err := renderImpactsTable(out, details.Impacts); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)

	if err := renderNotificationsTable(out, details.Notifications, now); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)

	return nil
}

// saveEmails writes each notification body to <dir>/<name>.html.
func saveEmails(out io.Writer, dir string, notifications []zayo.NotificationDetail) error {
	if len(notifications) == 0 {
		return nil
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", constants.ErrNotDirectory, dir)
	}

	if err := os.MkdirAll(dir, constants.EmailDirPerm); err != nil {
		return fmt.Errorf("failed to create email directory: %w", err)
	}

	for i := range notifications {
		name, err := emailFileName(notifications[i].Name)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, []byte(notifications[i].EmailBody), constants.EmailFilePerm); err != nil {
			return fmt.Errorf("failed to save email %s: %w", notifications[i].Name, err)
		}

		_, _ = fmt.Fprintf(out, "Email saved: %s\n", path)
	}

	return nil
}

// emailFileName maps a notification name to a file name that stays inside
// the target directory.
func emailFileName(name string) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" || name == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmailName, name)
	}

	if name == ".." || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", constants.ErrDirectoryTraversalDetected, name)
	}

	return name + ".html", nil
}
