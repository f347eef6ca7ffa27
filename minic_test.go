package minic

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/minic-lang/minic/errors"
	"github.com/minic-lang/minic/token"
)

func TestTokenize(t *testing.T) {
	tokens, diags := Tokenize("int x = -5;")
	require.Empty(t, diags)
	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	require.Equal(t, []token.Type{token.TYPE, token.ID, token.ASSIGN, token.INT_NUM, token.SEMI}, types)
	require.Equal(t, int64(-5), tokens[3].Value)

	_, diags = Tokenize("int @x;", WithFilename("bad.c"))
	require.Len(t, diags, 1)
	require.Equal(t, errors.LexicalError, diags[0].Kind)
	require.Equal(t, "bad.c", diags[0].File)
	require.Equal(t, 5, diags[0].Column)
}

func TestParse(t *testing.T) {
	ctx := context.Background()
	program, diags, err := Parse(ctx, "int main() { return 0; }")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Len(t, program.Functions(), 1)

	program, diags, err = Parse(ctx, "int main() { int x = 5 return x; }")
	require.NoError(t, err)
	require.NotNil(t, program)
	require.Len(t, diags, 1)
	require.Equal(t, errors.SyntaxError, diags[0].Kind)
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	program, diags, err := Parse(ctx, "int main() { return 0; }")
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, program)
	require.Nil(t, diags)

	result, err := Analyze(ctx, "int main() { return 0; }")
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, result)
}

func TestCheck(t *testing.T) {
	program, _, err := Parse(context.Background(), "int main() { return y; }")
	require.NoError(t, err)
	diags := Check(program, WithFilename("main.c"))
	require.Len(t, diags, 1)
	require.Equal(t, errors.NameError, diags[0].Kind)
	require.Equal(t, "main.c", diags[0].File)
}

func TestAnalyzeScenarios(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		kind    errors.Kind
		message string
	}{
		{"valid", "int main() { int x = 5; x = x + 3; return x; }", 0, ""},
		{"undeclared", "int main() { return y; }", errors.NameError, "'y' not declared before use"},
		{"void main", "void main() { return 0; }", errors.ControlFlowError, "function 'main' must return int"},
		{"missing return", "int f() { int a = 10; }", errors.ControlFlowError, "non-void function 'f' must return a value"},
		{"missing semicolon", "int main() { int x = 5 return x; }", errors.SyntaxError, "unexpected 'return'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(context.Background(), tt.source)
			require.NoError(t, err)
			require.NotEmpty(t, result.Tokens)
			require.NotNil(t, result.Program)
			if tt.message == "" {
				require.True(t, result.Valid())
				require.NoError(t, result.Err())
				return
			}
			require.False(t, result.Valid())
			require.Len(t, result.Diagnostics, 1)
			require.Equal(t, tt.kind, result.Diagnostics[0].Kind)
			require.Contains(t, result.Diagnostics[0].Message, tt.message)
			require.Error(t, result.Err())
		})
	}
}

func TestAnalyzeSkipsCheckAfterSyntaxErrors(t *testing.T) {
	// The undeclared y would be reported by the checker.
	result, err := Analyze(context.Background(), "int f() { return y; } int main() { int x = ; return 0; }")
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, errors.SyntaxError, result.Diagnostics[0].Kind)
}

func TestAnalyzeLexicalErrors(t *testing.T) {
	result, err := Analyze(context.Background(), "int main() { int x = 1; $ return x; }")
	require.NoError(t, err)
	require.False(t, result.Valid())
	require.True(t, errors.List(result.Diagnostics).HasKind(errors.LexicalError))
	require.False(t, errors.List(result.Diagnostics).HasKind(errors.NameError))
}

func TestAnalyzeMaxErrors(t *testing.T) {
	source := "int a = ; int b = ; int c = ; int d = ; int e = ;"
	result, err := Analyze(context.Background(), source, WithMaxErrors(2))
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 2)

	result, err = Analyze(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 5)
}

func TestAnalyzeDeterministic(t *testing.T) {
	source := "int main() { bool b = 1; float f = 2.0; return q; }"
	first, err := Analyze(context.Background(), source)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Analyze(context.Background(), source)
		require.NoError(t, err)
		require.Equal(t, first.Diagnostics, again.Diagnostics)
	}
}

func TestAnalyzeTokens(t *testing.T) {
	sources := []string{
		"int main() { int x = 5; return x; }",
		"int main() { int x = 1; $ return x; }",
		"int a = ; int b = ; int c = ; int d = 4;",
	}
	for _, source := range sources {
		expected, _ := Tokenize(source, WithFilename("main.c"))
		result, err := Analyze(context.Background(), source, WithFilename("main.c"), WithMaxErrors(1))
		require.NoError(t, err)
		require.Equal(t, expected, result.Tokens)
	}
}

func TestAnalyzeLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := Analyze(context.Background(), "int main() { return 0; }", WithLogger(logger), WithFilename("main.c"))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"message":"parsed program"`)
	require.Contains(t, buf.String(), `"message":"checked program"`)
	require.Contains(t, buf.String(), `"message":"analyzed source"`)
	require.Contains(t, buf.String(), `"file":"main.c"`)
}

func TestNilOption(t *testing.T) {
	result, err := Analyze(context.Background(), "int main() { return 0; }", nil)
	require.NoError(t, err)
	require.True(t, result.Valid())
}
