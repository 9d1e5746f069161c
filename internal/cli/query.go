package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/dbhelper/internal/store"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run a SELECT and print the rows",
		Long: `Run a parameterized SELECT and print every row with its columns in
result order. Placeholders are written as ? regardless of driver; each
extra argument binds one placeholder as text.

Example:
  dbhelper query "SELECT id, name FROM customer WHERE name LIKE ?" "%acme%"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], args[1:], cmd)
		},
	}
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run an INSERT, UPDATE, DELETE, or DDL statement",
		Long: `Run a parameterized data-modifying statement and print the number of
affected rows.

Example:
  dbhelper exec "UPDATE customer SET remark = ? WHERE id = ?" vip 1`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runQuery(opts *RootOptions, query string, params []string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	rows, err := s.helper.ExecuteQuery(cmd.Context(), query, bindArgs(params)...)
	if err != nil {
		return s.formatter.Fail("query failed", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(rows)
	}
	return writeRows(s.formatter.Writer, rows)
}

func runExec(opts *RootOptions, query string, params []string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	n, err := s.helper.ExecuteUpdate(cmd.Context(), query, bindArgs(params)...)
	if err != nil {
		return s.formatter.Fail("statement failed", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(map[string]int64{"affected": n})
	}
	fmt.Fprintf(s.formatter.Writer, "%d row(s) affected\n", n)
	return nil
}

func bindArgs(params []string) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p
	}
	return args
}

// writeRows prints rows as an aligned table headed by the first row's
// column names.
func writeRows(w io.Writer, rows []store.Row) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rows[0].Names(), "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = formatValue(c.Value)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
