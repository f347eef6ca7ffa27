package main

import (
	"testing"

	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/stretchr/testify/require"

	"github.com/minic-lang/minic/errors"
)

func TestRemapDiagnostics(t *testing.T) {
	diags := []*errors.Diagnostic{
		{Kind: errors.SyntaxError, Message: "a", Line: 1, Column: 3},
		{Kind: errors.SyntaxError, Message: "b", Line: 4, Column: 1},
		{Kind: errors.InternalError, Message: "c"},
	}
	got := remapDiagnostics(diags, 2, 5)
	require.Equal(t, 3, got[0].Line)
	require.Equal(t, 5, got[1].Line)
	require.Equal(t, 0, got[2].Line)

	// The input is left untouched.
	require.Equal(t, 1, diags[0].Line)
	require.Equal(t, 4, diags[1].Line)

	got = remapDiagnostics(diags, 2, 0)
	require.Equal(t, 6, got[1].Line)
}

func TestLSPDiagnostics(t *testing.T) {
	got := lspDiagnostics([]*errors.Diagnostic{
		{Code: errors.E3003, Message: "m", Line: 2, Column: 5, EndColumn: 9},
		{Code: errors.E1101, Message: "n", Line: 1, Column: 1},
		{Code: errors.E9001, Message: "o"},
	})
	require.Len(t, got, 3)
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 1, Character: 9},
	}, got[0].Range)
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 1},
	}, got[1].Range)
	require.Equal(t, protocol.Position{}, got[2].Range.Start)
	require.Equal(t, protocol.SeverityError, got[0].Severity)
	require.Equal(t, "E3003", got[0].Code)
}
