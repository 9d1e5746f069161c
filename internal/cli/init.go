package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dbhelper/internal/customer"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the customer table",
		Long: `Create the customer table in the configured database if it does not
already exist. The schema is written for SQLite.

Example:
  dbhelper init --config ./dbhelper.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := customer.NewService(s.helper).EnsureSchema(cmd.Context()); err != nil {
		return s.formatter.Fail("failed to create schema", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(map[string]string{"table": customer.Table.Name()})
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Table %s ready\n", customer.Table.Name())
	return nil
}
