package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders diagnostics in a compact Rust-like style, optionally
// with ANSI colors.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new diagnostic formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for diagnostic formatting
var (
	colorErrorBold = []color.Attribute{color.FgHiRed, color.Bold}
	colorCode      = []color.Attribute{color.FgHiBlack}
	colorLocation  = []color.Attribute{color.FgCyan}
	colorPipe      = []color.Attribute{color.FgHiBlack}
	colorCaret     = []color.Attribute{color.FgHiRed}
	colorHint      = []color.Attribute{color.FgHiYellow}
)

// Format renders one diagnostic. The source is the full text that was
// analyzed and is used to show the offending line; it may be empty.
func (f *Formatter) Format(d *Diagnostic, source string) string {
	return f.format(d, source, "")
}

func (f *Formatter) format(d *Diagnostic, source, prefix string) string {
	var b strings.Builder

	lineNumWidth := 2
	if d.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", d.Line))
	}
	padding := strings.Repeat(" ", lineNumWidth)

	// Header: "name error[E2001]: message"
	b.WriteString(f.sprint(colorErrorBold, d.Kind.String()))
	if d.Code != "" {
		b.WriteString(f.sprint(colorCode, fmt.Sprintf("[%s]", d.Code)))
	} else if prefix != "" {
		b.WriteString(f.sprint(colorCode, fmt.Sprintf("[%s]", prefix)))
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	b.WriteString("\n")

	if d.Line == 0 {
		return b.String()
	}

	// Location: "  --> file.c:10:5"
	b.WriteString(padding)
	b.WriteString(f.sprint(colorLocation, "-->"))
	b.WriteString(" ")
	b.WriteString(f.sprint(colorLocation, d.Location()))
	b.WriteString("\n")

	if text, ok := sourceLine(source, d.Line); ok {
		b.WriteString(padding)
		b.WriteString(f.sprint(colorPipe, " |\n"))
		fmt.Fprintf(&b, "%*d", lineNumWidth, d.Line)
		b.WriteString(f.sprint(colorPipe, " | "))
		b.WriteString(text)
		b.WriteString("\n")
		if d.Column > 0 {
			caretLen := 1
			if d.EndColumn > d.Column {
				caretLen = d.EndColumn - d.Column + 1
			}
			b.WriteString(padding)
			b.WriteString(f.sprint(colorPipe, " | "))
			b.WriteString(strings.Repeat(" ", d.Column-1))
			b.WriteString(f.sprint(colorCaret, strings.Repeat("^", caretLen)))
			b.WriteString("\n")
		}
	}

	if d.Hint != "" {
		b.WriteString(padding)
		b.WriteString(f.sprint(colorPipe, " = "))
		b.WriteString(f.sprint(colorHint, "hint: "))
		b.WriteString(d.Hint)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatAll renders a list of diagnostics followed by a summary line.
func (f *Formatter) FormatAll(diags []*Diagnostic, source string) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return f.Format(diags[0], source)
	}
	var b strings.Builder
	total := len(diags)
	for i, d := range diags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.format(d, source, fmt.Sprintf("%d/%d", i+1, total)))
	}
	b.WriteString("\n")
	b.WriteString(f.sprint(colorErrorBold, fmt.Sprintf("found %d errors", total)))
	b.WriteString("\n")
	return b.String()
}

func (f *Formatter) sprint(attrs []color.Attribute, s string) string {
	if !f.UseColor {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// sourceLine returns the 1-indexed line of the source text.
func sourceLine(source string, line int) (string, bool) {
	if source == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}
