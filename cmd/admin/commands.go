package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Adaptare-Software/workshop-registration/admin"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/spf13/cobra"
)

// opener connects to the registration store and returns its closer.
type opener func(ctx context.Context) (registration.Repository, func() error, error)

type adminCLI struct {
	open   opener
	logger *slog.Logger
	loc    *time.Location
}

func newRootCmd(open opener, logger *slog.Logger, loc *time.Location) *cobra.Command {
	cli := &adminCLI{open: open, logger: logger, loc: loc}

	root := &cobra.Command{
		Use:           "workshop-admin",
		Short:         "Manage workshop registrations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(cli.listCmd(), cli.toggleCmd(), cli.shellCmd())

	return root
}

// withTable loads a table against a freshly opened store and hands it to fn.
// Alerts go to the command's error stream.
func (c *adminCLI) withTable(cmd *cobra.Command, fn func(ctx context.Context, table *admin.Table) error) error {
	ctx := cmd.Context()

	repo, closeRepo, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	alerter := admin.AlerterFunc(func(ctx context.Context, message string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "ALERTA: %s\n", message)
	})
	table := admin.NewTable(repo, alerter, c.logger)
	if err := table.Load(ctx); err != nil {
		return err
	}

	return fn(ctx, table)
}

func (c *adminCLI) listCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registrations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := registration.ParseFilter(filter)
			if err != nil {
				return err
			}

			return c.withTable(cmd, func(ctx context.Context, table *admin.Table) error {
				table.SetFilter(f)
				return admin.RenderText(cmd.OutOrStdout(), table.Rows(), c.loc)
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(registration.FilterAll), "all, not_sent or not_paid")

	return cmd
}

func (c *adminCLI) toggleCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip is_sent or is_paid on one registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flag, err := registration.ParseFlag(field)
			if err != nil {
				return err
			}
			id := args[0]

			return c.withTable(cmd, func(ctx context.Context, table *admin.Table) error {
				if err := table.Toggle(ctx, id, flag); err != nil {
					return err
				}

				for _, r := range table.All() {
					if r.ID == id {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s = %t\n", id, flag, r.Flag(flag))
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "is_sent or is_paid")
	cobra.CheckErr(cmd.MarkFlagRequired("field"))

	return cmd
}

func (c *adminCLI) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive registration table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTable(cmd, func(ctx context.Context, table *admin.Table) error {
				return runShell(ctx, table, cmd.InOrStdin(), cmd.OutOrStdout(), c.loc)
			})
		},
	}
}

const shellHelp = `commands:
  filter all|not_sent|not_paid
  sent <row>    toggle is_sent on a row of the current view
  paid <row>    toggle is_paid on a row of the current view
  reload
  quit`

// runShell reads one command per line until quit or end of input.
func runShell(ctx context.Context, table *admin.Table, in io.Reader, out io.Writer, loc *time.Location) error {
	show := func() {
		fmt.Fprintf(out, "\n[%s]\n", admin.FilterLabel(table.Filter()))
		if err := admin.RenderText(out, table.Rows(), loc); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	show()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, shellHelp)
		case "reload":
			if err := table.Load(ctx); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			show()
		case "filter":
			if len(fields) != 2 {
				fmt.Fprintln(out, shellHelp)
				continue
			}
			f, err := registration.ParseFilter(fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			table.SetFilter(f)
			show()
		case "sent", "paid":
			flag := registration.FlagSent
			if fields[0] == "paid" {
				flag = registration.FlagPaid
			}
			if len(fields) != 2 {
				fmt.Fprintln(out, shellHelp)
				continue
			}
			row, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Fprintf(out, "not a row number: %q\n", fields[1])
				continue
			}
			if err := table.ToggleRow(ctx, row-1, flag); err != nil {
				fmt.Fprintln(out, err)
			}
			show()
		default:
			fmt.Fprintln(out, shellHelp)
		}
	}
}
