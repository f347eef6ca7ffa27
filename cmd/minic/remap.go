package main

import (
	"strings"

	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"

	"github.com/minic-lang/minic/errors"
)

// trimBlankLines strips leading and trailing blank lines from code. It
// returns the trimmed code and the number of leading lines removed.
func trimBlankLines(code string) (string, int) {
	lines := strings.Split(code, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n"), start
}

// remapDiagnostics returns copies of diags with their lines shifted down by
// offset. When lines is positive no diagnostic points past that line.
func remapDiagnostics(diags []*errors.Diagnostic, offset, lines int) []*errors.Diagnostic {
	out := make([]*errors.Diagnostic, 0, len(diags))
	for _, d := range diags {
		c := *d
		if c.Line > 0 {
			c.Line += offset
			if lines > 0 && c.Line > lines {
				c.Line = lines
			}
		}
		out = append(out, &c)
	}
	return out
}

// lspDiagnostics converts diagnostics to their Language Server Protocol
// form, which uses 0-indexed lines and characters.
func lspDiagnostics(diags []*errors.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		line := uint32(max(d.Line-1, 0))
		start := uint32(max(d.Column-1, 0))
		end := start + 1
		if d.EndColumn > d.Column {
			end = uint32(d.EndColumn)
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: start},
				End:   protocol.Position{Line: line, Character: end},
			},
			Severity: protocol.SeverityError,
			Code:     string(d.Code),
			Source:   "minic",
			Message:  d.Message,
		})
	}
	return out
}
