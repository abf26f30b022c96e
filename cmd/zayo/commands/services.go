package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zayo-client/internal/constants"
	"github.com/fivetwenty-io/zayo-client/pkg/zayo"
)

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "Service inventory",
		Long:    "List the service inventory and look up the service carried on a circuit",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesCircuitCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		Long:  "List the service inventory, optionally filtered by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client zayo.Client) error {
				return runServicesList(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), client, status)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only services with this status (active, pending_change)")

	return cmd
}

func runServicesList(ctx context.Context, out, errOut io.Writer, client zayo.Client, status string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	opts := zayo.NewRequestOptions()
	if status != "" {
		opts = opts.WithFilter(zayo.FieldStatus, status)
	}

	list, err := client.Services().List(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	warnIncomplete(errOut, list.Pagination.FailedPages)

	if format != constants.FormatTable {
		return renderStructured(out, format, list)
	}

	if len(list.Records) == 0 {
		_, _ = fmt.Fprintln(out, "No services found")

		return nil
	}

	configureColor(out)

	return renderServicesTable(out, list.Records)
}

func newServicesCircuitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "circuit CIRCUIT_ID",
		Short: "Show the service for a circuit",
		Long:  "Display the service inventory record whose circuit matches CIRCUIT_ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client zayo.Client) error {
				return runServicesCircuit(ctx, cmd.OutOrStdout(), client, args[0])
			})
		},
	}
}

func runServicesCircuit(ctx context.Context, out io.Writer, client zayo.Client, circuitID string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	service, err := client.Services().GetByCircuit(ctx, circuitID, nil)
	if errors.Is(err, zayo.ErrServiceNotFound) {
		_, _ = fmt.Fprintf(out, "Circuit not found: %s\n", circuitID)

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to find circuit: %w", err)
	}

	if format != constants.FormatTable {
		return renderStructured(out, format, service)
	}

	configureColor(out)

	return renderServicesTable(out, []zayo.Service{*service})
}
