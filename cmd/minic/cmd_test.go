package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout, stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckValid(t *testing.T) {
	stdout, _, err := run(t, "", "check", "-c", "int main() { int x = 5; x = x + 3; return x; }")
	require.NoError(t, err)
	require.Equal(t, "valid\n", stdout)
}

func TestCheckInvalid(t *testing.T) {
	stdout, _, err := run(t, "", "check", "-c", "int main() { return y; }")
	require.ErrorIs(t, err, errInvalid)
	expected := `name error[E2001]: 'y' not declared before use
  --> 1:21
   |
 1 | int main() { return y; }
   |                     ^
`
	require.Equal(t, expected, stdout)
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.c")
	require.NoError(t, os.WriteFile(path, []byte("int f() {\n  int a = 10;\n}\n"), 0o644))
	stdout, _, err := run(t, "", "check", path)
	require.ErrorIs(t, err, errInvalid)
	require.Contains(t, stdout, "non-void function 'f' must return a value")
	require.Contains(t, stdout, "--> "+path+":1:5")
}

func TestCheckStdin(t *testing.T) {
	stdout, _, err := run(t, "int main() { return 0; }", "check", "--stdin")
	require.NoError(t, err)
	require.Equal(t, "valid\n", stdout)
}

func TestCheckMultipleErrors(t *testing.T) {
	stdout, _, err := run(t, "", "check", "-c", "int main() {\n  int x = 5\n  return q\n}")
	require.ErrorIs(t, err, errInvalid)
	require.Contains(t, stdout, "[1/2]")
	require.Contains(t, stdout, "[2/2]")
	require.Contains(t, stdout, "found 2 errors")
}

func TestInputErrors(t *testing.T) {
	_, _, err := run(t, "", "check")
	require.ErrorContains(t, err, "no input provided")

	_, _, err = run(t, "", "check", "-c", "int x;", "--stdin")
	require.ErrorContains(t, err, "multiple input sources specified")

	_, _, err = run(t, "", "check", "-c", "int x;", "file.c")
	require.ErrorContains(t, err, "multiple input sources specified")

	_, _, err = run(t, "", "check", filepath.Join(t.TempDir(), "missing.c"))
	require.Error(t, err)
	require.NotErrorIs(t, err, errInvalid)
}

func TestTokensTable(t *testing.T) {
	stdout, _, err := run(t, "", "tokens", "-c", "int x = -5;")
	require.NoError(t, err)
	require.Contains(t, stdout, "Position")
	require.Contains(t, stdout, "INT_NUM")
	require.Contains(t, stdout, "-5")
	require.Contains(t, stdout, "1:9")
}

func TestTokensJSON(t *testing.T) {
	stdout, _, err := run(t, "", "tokens", "-o", "json", "-c", "bool b = true;\nchar c = 'a';")
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 10)
	require.Equal(t, map[string]any{"type": "BOOL_LIT", "value": true, "line": 1.0, "column": 10.0}, records[3])
	require.Equal(t, map[string]any{"type": "CHAR_LIT", "value": "a", "line": 2.0, "column": 10.0}, records[8])
}

func TestTokensLexicalError(t *testing.T) {
	stdout, stderr, err := run(t, "", "tokens", "-c", "int @x;")
	require.ErrorIs(t, err, errInvalid)
	require.Contains(t, stdout, "ID")
	require.Contains(t, stderr, "lexical error[E1001]")
}

func TestTokensUnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "tokens", "-o", "xml", "-c", "int x;")
	require.ErrorContains(t, err, "unknown output format: xml")
}

func TestASTJSON(t *testing.T) {
	stdout, _, err := run(t, "", "ast", "-c", "int g = 1;")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	require.Equal(t, "Program", tree["node"])
	decls := tree["declarations"].([]any)
	require.Len(t, decls, 1)
	require.Equal(t, "Declaration", decls[0].(map[string]any)["node"])
	require.NotContains(t, tree, "line")

	stdout, _, err = run(t, "", "ast", "--positions", "-c", "int g = 1;")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	require.Equal(t, 1.0, tree["line"])
}

func TestASTDump(t *testing.T) {
	stdout, _, err := run(t, "", "ast", "-o", "dump", "-c", "int main() { return 0; }")
	require.NoError(t, err)
	require.Contains(t, stdout, "ast.Program")
	require.Contains(t, stdout, "ast.FunctionDefinition")
	require.NotContains(t, stdout, "0xc")
}

func TestASTSyntaxError(t *testing.T) {
	stdout, stderr, err := run(t, "", "ast", "-c", "int main() { int x = 5 return x; }")
	require.ErrorIs(t, err, errInvalid)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "unexpected 'return' while parsing declaration")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "minic dev\n"))
	require.Contains(t, stdout, "commit: unknown")
}

func TestBindFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("depth", 7, "")
	require.NoError(t, bindFlags(flags, "bindtest.", "depth"))
	require.Equal(t, 7, viper.GetInt("bindtest.depth"))

	err := bindFlags(flags, "bindtest.", "depth", "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), `bind flag "missing"`)
}
