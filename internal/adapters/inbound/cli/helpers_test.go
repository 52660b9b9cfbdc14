package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abdidvp/flooring/internal/adapters/inbound/cli"
)

// orderDate is far enough ahead to pass the future-date rule.
const orderDate = "01-01-2099"

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmdForTest()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--path", dir}, args...))
	err := root.Execute()
	return stdout.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, "flooring %v", args)
	return out
}

// seededDir returns a data root initialised with the starter catalogs.
func seededDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, dir, "init")
	return dir
}

func addBob(t *testing.T, dir string) string {
	t.Helper()
	return mustRun(t, dir, "orders", "add",
		"--date", orderDate,
		"--customer", "Bob",
		"--state", "TX",
		"--product", "Tile",
		"--area", "200",
		"--json")
}
