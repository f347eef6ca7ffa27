package parser

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/minic-lang/minic/ast"
	"github.com/minic-lang/minic/errors"
)

// Core parser tests (parser.go)
// - Token position tracking
// - Context cancellation
// - Max depth and error limits
// - Multi-error recovery
// - Bad input handling

func parseErrors(t *testing.T, err error) []*errors.Diagnostic {
	t.Helper()
	require.Error(t, err)
	var perr *Errors
	require.True(t, stderrors.As(err, &perr), "expected *Errors, got %T", err)
	return perr.Diagnostics()
}

func TestTokenLineCol(t *testing.T) {
	code := `
int x = 5;
int y = 10;
`
	program, err := Parse(context.Background(), code)
	require.NoError(t, err)
	require.Len(t, program.Decls, 2)

	decl1 := program.Decls[0].(*ast.Declaration)
	decl2 := program.Decls[1].(*ast.Declaration)

	require.Equal(t, 2, decl1.Pos().LineNumber())
	require.Equal(t, 1, decl1.Pos().ColumnNumber())
	require.Equal(t, 2, decl1.End().LineNumber())
	require.Equal(t, 11, decl1.End().ColumnNumber())

	require.Equal(t, 3, decl2.Pos().LineNumber())
	require.Equal(t, 1, decl2.Pos().ColumnNumber())
	require.Equal(t, 12, decl2.End().ColumnNumber())

	require.Equal(t, 9, decl1.Init.Pos().ColumnNumber())
}

func TestValidProgram(t *testing.T) {
	program, err := Parse(context.Background(), `int main() { int x = 5; x = x + 3; return x; }`)
	require.NoError(t, err)
	require.Len(t, program.Decls, 1)
	require.Equal(t, "int main() { int x = 5; x = (x + 3); return x; }", program.String())

	fn, ok := program.Decls[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name.Name)
	require.Equal(t, "int", fn.ReturnType.Name)
	require.Empty(t, fn.Params)
	require.Len(t, fn.Body.Stmts, 3)

	decl := fn.Body.Stmts[0].(*ast.Declaration)
	require.Equal(t, "x", decl.Name.Name)
	lit := decl.Init.(*ast.Literal)
	require.Equal(t, "int", lit.Type)
	require.Equal(t, int64(5), lit.Value)

	assign := fn.Body.Stmts[1].(*ast.ExpressionStatement).X.(*ast.Assignment)
	require.Equal(t, "x", assign.Target.Name)
	sum := assign.Value.(*ast.BinaryExpression)
	require.Equal(t, "PLUS", string(sum.Op))

	ret := fn.Body.Stmts[2].(*ast.ReturnStatement)
	require.Equal(t, "x", ret.Value.(*ast.Identifier).Name)
}

func TestGlobalDeclarations(t *testing.T) {
	program, err := Parse(context.Background(), `
int g;
float h = 1.5f;
int main() { return 0; }
`)
	require.NoError(t, err)
	require.Len(t, program.Decls, 3)
	require.Nil(t, program.Decls[0].(*ast.Declaration).Init)
	require.Equal(t, "float", program.Decls[1].(*ast.Declaration).Init.(*ast.Literal).Type)
	require.Len(t, program.Functions(), 1)
}

func TestParameters(t *testing.T) {
	program, err := Parse(context.Background(), `int add(int a, double b, char c) { return a; }`)
	require.NoError(t, err)
	fn := program.Decls[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Params, 3)
	require.Equal(t, "int a", fn.Params[0].String())
	require.Equal(t, "double b", fn.Params[1].String())
	require.Equal(t, "char c", fn.Params[2].String())
	require.Equal(t, "int add(int a, double b, char c) { return a; }", fn.String())
}

func TestFilenameInErrors(t *testing.T) {
	_, err := Parse(context.Background(), `@`, WithFilename("test.mc"))
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "test.mc", diags[0].File)
	require.Equal(t, errors.LexicalError, diags[0].Kind)

	_, err = Parse(context.Background(), `int main() { return 0 }`, WithFilename("early.mc"))
	diags = parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "early.mc", diags[0].File)
	require.Equal(t, errors.SyntaxError, diags[0].Kind)
}

func TestMaxDepth(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("int x = ")
	for i := 0; i < 600; i++ {
		sb.WriteString("(")
	}
	sb.WriteString("1")
	for i := 0; i < 600; i++ {
		sb.WriteString(")")
	}
	sb.WriteString(";")

	_, err := Parse(context.Background(), sb.String())
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, errors.E1104, diags[0].Code)
	require.Contains(t, diags[0].Message, "maximum nesting depth exceeded")

	// Nested blocks count toward the same limit
	sb.Reset()
	sb.WriteString("void f() ")
	for i := 0; i < 20; i++ {
		sb.WriteString("{ ")
	}
	for i := 0; i < 20; i++ {
		sb.WriteString("} ")
	}
	_, err = Parse(context.Background(), sb.String(), WithMaxDepth(10))
	diags = parseErrors(t, err)
	require.Equal(t, errors.E1104, diags[0].Code)

	// The same input is fine under the default limit
	_, err = Parse(context.Background(), sb.String())
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	program, err := Parse(ctx, `int main() { return 0; }`)
	require.Nil(t, program)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMultipleErrors(t *testing.T) {
	code := `int main() {
    int x = ;
    x = 3 +;
    return x;
}`
	program, err := Parse(context.Background(), code)
	diags := parseErrors(t, err)
	require.Len(t, diags, 2)

	require.Equal(t, 2, diags[0].Line)
	require.Equal(t, 13, diags[0].Column)
	require.Equal(t, errors.E1102, diags[0].Code)
	require.Equal(t, "unexpected ';' while parsing declaration (expected expression)", diags[0].Message)

	require.Equal(t, 3, diags[1].Line)
	require.Equal(t, 12, diags[1].Column)
	require.Equal(t, "unexpected ';' while parsing expression statement (expected expression)", diags[1].Message)

	// The statements that parsed are kept
	require.Len(t, program.Decls, 1)
	fn := program.Decls[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Stmts, 1)
	require.Equal(t, "return x;", fn.Body.Stmts[0].String())
}

func TestMissingSemicolon(t *testing.T) {
	program, err := Parse(context.Background(), `int main() { int x = 5 return x; }`)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "syntax error at line 1, column 24: unexpected 'return' while parsing declaration (expected ';')",
		diags[0].Error())
	require.Equal(t, diags[0].Error(), err.Error())

	// Parsing resumes at the return statement
	fn := program.Decls[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Stmts, 1)
	require.IsType(t, &ast.ReturnStatement{}, fn.Body.Stmts[0])
}

func TestPartialProgram(t *testing.T) {
	program, err := Parse(context.Background(), `int f() { return 1 } int main() { return 0; }`)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "while parsing return statement (expected ';')")
	require.Len(t, program.Decls, 2)
	require.Equal(t, "main", program.Functions()[1].Name.Name)
}

func TestUnclosedBlock(t *testing.T) {
	program, err := Parse(context.Background(), `int main() { return 0;`)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected end of file while parsing block (expected '}')", diags[0].Message)
	require.Len(t, program.Decls, 1)
}

func TestSingleEndOfFileError(t *testing.T) {
	_, err := Parse(context.Background(), `int main() { int x = `)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected end of file while parsing declaration (expected expression)", diags[0].Message)
}

func TestTopLevelErrors(t *testing.T) {
	program, err := Parse(context.Background(), `x = 1; int main() { return 0; }`)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected 'x' while parsing top-level declaration (expected type name)", diags[0].Message)
	require.Len(t, program.Decls, 1)

	_, err = Parse(context.Background(), `int f(x) { return x; }`)
	diags = parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected 'x' while parsing parameter list (expected type name)", diags[0].Message)

	_, err = Parse(context.Background(), `int f(int a int b) { return a; }`)
	diags = parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected 'int' while parsing parameter list (expected ',' or ')')", diags[0].Message)

	_, err = Parse(context.Background(), `int x 5;`)
	diags = parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected '5' while parsing declaration (expected '=' or ';')", diags[0].Message)
}

func TestRecoveryInsideParentheses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			"parameter missing name",
			`int f(int) { return 0; } int main() { return 0; }`,
			"unexpected ')' while parsing parameter list",
		},
		{
			"type name as call argument",
			`int x = foo(int y); int main() { return 0; }`,
			"unexpected 'int' while parsing function call (expected expression)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Parse(context.Background(), tt.input)
			diags := parseErrors(t, err)
			require.Len(t, diags, 1)
			require.Contains(t, diags[0].Message, tt.message)
			require.Len(t, program.Decls, 1)
			require.Equal(t, "main", program.Functions()[0].Name.Name)
		})
	}

	program, err := Parse(context.Background(), `int main() { g(int y); return 0; }`)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, "unexpected 'int' while parsing function call (expected expression)", diags[0].Message)
	fn := program.Functions()[0]
	require.Len(t, fn.Body.Stmts, 1)
	require.IsType(t, &ast.ReturnStatement{}, fn.Body.Stmts[0])
}

func TestErrorLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("int main() {\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("  x = ;\n")
	}
	sb.WriteString("}\n")

	_, err := Parse(context.Background(), sb.String(), WithMaxErrors(3))
	diags := parseErrors(t, err)
	require.Len(t, diags, 3)

	_, err = Parse(context.Background(), sb.String())
	diags = parseErrors(t, err)
	require.Len(t, diags, 10)
}

func TestLexicalErrorsKeepStatements(t *testing.T) {
	program, err := Parse(context.Background(), `int main() { int x = 5 @; return x; }`)
	diags := parseErrors(t, err)
	require.Len(t, diags, 1)
	require.Equal(t, errors.LexicalError, diags[0].Kind)
	require.Equal(t, errors.E1001, diags[0].Code)

	fn := program.Decls[0].(*ast.FunctionDefinition)
	require.Len(t, fn.Body.Stmts, 2)
}

func TestDiagnosticsSorted(t *testing.T) {
	code := `int main() {
    int x = ;
    int y = 1 $;
    return x
}`
	_, err := Parse(context.Background(), code)
	diags := parseErrors(t, err)
	require.Len(t, diags, 3)
	for i := 1; i < len(diags); i++ {
		require.Less(t, diags[i-1].Line, diags[i].Line)
	}
	require.Equal(t, errors.SyntaxError, diags[0].Kind)
	require.Equal(t, errors.LexicalError, diags[1].Kind)
	require.Equal(t, errors.SyntaxError, diags[2].Kind)
}

func TestFriendlyErrorMessage(t *testing.T) {
	code := "int main() { return 0 }"
	_, err := Parse(context.Background(), code)
	var perr *Errors
	require.True(t, stderrors.As(err, &perr))
	require.Equal(t, 1, perr.Count())
	require.NotNil(t, perr.First())

	msg := perr.FriendlyErrorMessage(code)
	require.Contains(t, msg, "syntax error[E1101]: unexpected '}' while parsing return statement (expected ';')")
	require.Contains(t, msg, code)
}

func TestErrorsUnwrap(t *testing.T) {
	_, err := Parse(context.Background(), `int main() { return y }`)
	var d *errors.Diagnostic
	require.True(t, stderrors.As(err, &d))
	require.Equal(t, errors.SyntaxError, d.Kind)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := Parse(context.Background(), `int main() { return 0; }`,
		WithFilename("main.mc"), WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "parsed program")
	require.Contains(t, buf.String(), "main.mc")
}

func TestBadInputs(t *testing.T) {
	inputs := []string{
		"",
		";",
		"}",
		"{",
		"(((",
		")))",
		"int",
		"int main",
		"int main(",
		"int main()",
		"int main() {",
		"int main() { if",
		"int main() { if (",
		"int main() { if (x",
		"int main() { if (x)",
		"int main() { for (",
		"int main() { for (;",
		"int main() { for (;;",
		"int main() { while (x) }",
		"int main() { return",
		"int main() { x = = 1; }",
		"int main() { f(1,; }",
		"int main() { else x; }",
		"void f() { { { } }",
		"'a' 'b",
		"/* unterminated",
		"int main() { return 0; } }",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			require.NotPanics(t, func() {
				program, err := Parse(context.Background(), input)
				if err == nil {
					require.NotNil(t, program)
				}
			})
		})
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"int main() { return 0; }",
		"int x = 1 + 2 * 3;",
		"void f(int a, float b) { if (a > 0) { b = b + 1.5f; } else b = 0; }",
		"int main() { for (int i = 0; i < 10; i = i + 1) { while (true) ; } return 0; }",
		"bool b = 'a' == 'b' && 1.0 < 2.0e3 || false;",
		"int main() { return f(1, -2, g()); }",
		"int main() { int x = ; }",
		"int main( { return 0; }",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		program, err := Parse(context.Background(), input)
		if err == nil && program == nil {
			t.Fatal("nil program without error")
		}
	})
}
