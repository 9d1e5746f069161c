package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/dbhelper/internal/customer"
	"github.com/roach88/dbhelper/internal/querysql"
)

// CustomerOptions holds flags for the customer subcommands.
type CustomerOptions struct {
	*RootOptions
	Keyword string
	Set     []string
}

// NewCustomerCommand creates the customer command and its subcommands.
func NewCustomerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CustomerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "List, view, and edit customers",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long: `List customers ordered by id.

Example:
  dbhelper customer list
  dbhelper customer list --keyword acme --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerList(opts, cmd)
		},
	}
	list.Flags().StringVarP(&opts.Keyword, "keyword", "k", "", "only names containing this text")

	get := &cobra.Command{
		Use:           "get <id>",
		Short:         "Show one customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerGet(opts, args[0], cmd)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Long: `Create a customer from column=value pairs.

Example:
  dbhelper customer create --set name=customer100 --set contact=John --set telephone=13512345678`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerCreate(opts, cmd)
		},
	}
	create.Flags().StringArrayVarP(&opts.Set, "set", "s", nil, "column=value (repeatable)")
	_ = create.MarkFlagRequired("set")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update columns of a customer",
		Long: `Update the given columns of one customer.

Example:
  dbhelper customer update 1 --set contact=Eric`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerUpdate(opts, args[0], cmd)
		},
	}
	update.Flags().StringArrayVarP(&opts.Set, "set", "s", nil, "column=value (repeatable)")
	_ = update.MarkFlagRequired("set")

	del := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a customer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomerDelete(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func runCustomerList(opts *CustomerOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	list, err := customer.NewService(s.helper).GetCustomerList(cmd.Context(), opts.Keyword)
	if err != nil {
		return s.formatter.Fail("failed to list customers", err)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(list)
	}
	return writeCustomers(s.formatter.Writer, list)
}

func runCustomerGet(opts *CustomerOptions, rawID string, cmd *cobra.Command) error {
	id, err := parseID(rawID)
	if err != nil {
		return argError(opts.RootOptions, cmd, err)
	}

	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	c, err := customer.NewService(s.helper).GetCustomer(cmd.Context(), id)
	if err != nil {
		return s.formatter.Fail("failed to get customer", err)
	}
	if c == nil {
		msg := fmt.Sprintf("customer %d not found", id)
		_ = s.formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	if s.formatter.Format == "json" {
		return s.formatter.Success(c)
	}
	return writeCustomers(s.formatter.Writer, []customer.Customer{*c})
}

func runCustomerCreate(opts *CustomerOptions, cmd *cobra.Command) error {
	fields, err := parseAssignments(opts.Set)
	if err != nil {
		return argError(opts.RootOptions, cmd, err)
	}

	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ok, err := customer.NewService(s.helper).CreateCustomer(cmd.Context(), fields)
	if err != nil {
		return s.formatter.Fail("failed to create customer", err)
	}
	return reportWrite(s.formatter, "created", ok, "customer not created")
}

func runCustomerUpdate(opts *CustomerOptions, rawID string, cmd *cobra.Command) error {
	id, err := parseID(rawID)
	if err != nil {
		return argError(opts.RootOptions, cmd, err)
	}
	fields, err := parseAssignments(opts.Set)
	if err != nil {
		return argError(opts.RootOptions, cmd, err)
	}

	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ok, err := customer.NewService(s.helper).UpdateCustomer(cmd.Context(), id, fields)
	if err != nil {
		return s.formatter.Fail("failed to update customer", err)
	}
	return reportWrite(s.formatter, "updated", ok, fmt.Sprintf("customer %d not updated", id))
}

func runCustomerDelete(opts *CustomerOptions, rawID string, cmd *cobra.Command) error {
	id, err := parseID(rawID)
	if err != nil {
		return argError(opts.RootOptions, cmd, err)
	}

	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ok, err := customer.NewService(s.helper).DeleteCustomer(cmd.Context(), id)
	if err != nil {
		return s.formatter.Fail("failed to delete customer", err)
	}
	return reportWrite(s.formatter, "deleted", ok, fmt.Sprintf("customer %d not deleted", id))
}

// reportWrite prints the outcome of a single-row write. A write that did not
// affect exactly one row is a failure.
func reportWrite(f *OutputFormatter, verb string, ok bool, failMsg string) error {
	if !ok {
		_ = f.Error(ErrCodeNotFound, failMsg, nil)
		return NewExitError(ExitFailure, failMsg)
	}
	if f.Format == "json" {
		return f.Success(map[string]bool{verb: true})
	}
	fmt.Fprintf(f.Writer, "✓ Customer %s\n", verb)
	return nil
}

func writeCustomers(w io.Writer, list []customer.Customer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tTELEPHONE\tEMAIL\tREMARK")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Contact, c.Telephone, c.Email, c.Remark)
	}
	return tw.Flush()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", raw)
	}
	return id, nil
}

// parseAssignments turns column=value pairs into a field map, keeping the
// order given. A later pair for the same column wins.
func parseAssignments(pairs []string) (querysql.FieldMap, error) {
	var fields querysql.FieldMap
	for _, pair := range pairs {
		column, value, found := strings.Cut(pair, "=")
		column = strings.TrimSpace(column)
		if !found || column == "" {
			return nil, fmt.Errorf("invalid --set %q: expected column=value", pair)
		}
		fields = fields.Set(column, value)
	}
	return fields, nil
}

// argError reports an argument problem without touching the database.
func argError(opts *RootOptions, cmd *cobra.Command, err error) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	_ = formatter.Error(ErrCodeArgs, err.Error(), nil)
	return WrapExitError(ExitCommandError, "invalid arguments", err)
}
