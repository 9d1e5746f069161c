package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dbhelper/internal/export"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
	Sheet  string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <sql> [args...]",
		Short: "Export query results to an XLSX workbook",
		Long: `Run a parameterized SELECT and write the rows to an XLSX workbook.
The first sheet row holds the column names.

Example:
  dbhelper export "SELECT * FROM customer" --out customers.xlsx --sheet Customers`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "output .xlsx path (required)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", export.DefaultSheet, "sheet name")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(opts *ExportOptions, query string, params []string, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	rows, err := s.helper.ExecuteQuery(cmd.Context(), query, bindArgs(params)...)
	if err != nil {
		return s.formatter.Fail("query failed", err)
	}

	if err := export.WriteXLSX(rows, opts.Output, opts.Sheet); err != nil {
		_ = s.formatter.Error(ErrCodeExport, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(map[string]any{"file": opts.Output, "rows": len(rows)})
	}
	fmt.Fprintf(s.formatter.Writer, "✓ Exported %d row(s) to %s\n", len(rows), opts.Output)
	return nil
}
