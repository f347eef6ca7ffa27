package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/minic-lang/minic"
	"github.com/minic-lang/minic/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tokensHandler,
	}
	cmd.Flags().StringP("output", "o", "table", "output format (table, json)")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// tokenRecord is the JSON form of a token. Line and column are 1-indexed.
type tokenRecord struct {
	Type   token.Type `json:"type"`
	Value  any        `json:"value"`
	Line   int        `json:"line"`
	Column int        `json:"column"`
}

// tokenRecords converts tokens, shifting their lines down by lineOffset.
func tokenRecords(tokens []token.Token, lineOffset int) []tokenRecord {
	records := make([]tokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		records = append(records, tokenRecord{
			Type:   tok.Type,
			Value:  tok.Value,
			Line:   tok.StartPosition.LineNumber() + lineOffset,
			Column: tok.StartPosition.ColumnNumber(),
		})
	}
	return records
}

func tokensHandler(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	tokens, diags := minic.Tokenize(src.code, minic.WithFilename(src.filename))

	out := cmd.OutOrStdout()
	switch format, _ := cmd.Flags().GetString("output"); format {
	case "table":
		writeTokenTable(out, tokens)
	case "json":
		data, err := getOutputJSON(tokenRecords(tokens, 0))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	if len(diags) > 0 {
		printDiagnostics(cmd.ErrOrStderr(), diags, src.code)
		return errInvalid
	}
	logger := newLogger(cmd.ErrOrStderr())
	logger.Debug().
		Str("file", src.filename).
		Int("tokens", len(tokens)).
		Msg("tokenized source")
	return nil
}

func writeTokenTable(w io.Writer, tokens []token.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Position", "Type", "Literal"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	for _, tok := range tokens {
		table.Append([]string{tok.StartPosition.String(), string(tok.Type), tok.Literal})
	}
	table.Render()
}
