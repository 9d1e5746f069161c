package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbhelper/internal/querysql"
)

func TestCustomerLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "init")

	out := env.mustRun(t, "customer", "create",
		"--set", "name=customer100", "--set", "contact=John", "--set", "telephone=13512345678")
	assert.Contains(t, out, "Customer created")

	out = env.mustRun(t, "customer", "list")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "customer100")
	assert.Contains(t, out, "13512345678")

	out = env.mustRun(t, "customer", "update", "1", "--set", "contact=Eric")
	assert.Contains(t, out, "Customer updated")

	out = env.mustRun(t, "--format", "json", "customer", "get", "1")
	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Eric", data["contact"])
	assert.Equal(t, "customer100", data["name"])

	out = env.mustRun(t, "customer", "delete", "1")
	assert.Contains(t, out, "Customer deleted")

	_, _, err := env.run(t, "customer", "get", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCustomerListKeywordJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "init")
	for _, name := range []string{"Acme Corp", "Globex", "Acme Labs"} {
		env.mustRun(t, "customer", "create", "--set", "name="+name)
	}

	out := env.mustRun(t, "--format", "json", "customer", "list", "--keyword", "Acme")
	resp := decodeResponse(t, out)
	list, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestCustomerDeleteMissing(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "init")

	out, _, err := env.run(t, "--format", "json", "customer", "delete", "999")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestCustomerCreateUnknownColumn(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "init")

	out, _, err := env.run(t, "--format", "json", "customer", "create", "--set", "balance=10")
	require.Error(t, err)

	resp := decodeResponse(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
}

func TestCustomerInvalidID(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "customer", "get", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "invalid id")
}

func TestCustomerCreateRequiresSet(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "customer", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set")
}

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments([]string{"name=A", " contact =B=C", "name=D", "remark="})
	require.NoError(t, err)
	assert.Equal(t, querysql.FieldMap{
		{Column: "name", Value: "D"},
		{Column: "contact", Value: "B=C"},
		{Column: "remark", Value: ""},
	}, fields)

	for _, bad := range []string{"name", "=A", " =A"} {
		_, err := parseAssignments([]string{bad})
		assert.Error(t, err, "pair %q", bad)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("4x")
	assert.Error(t, err)
}
