package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minic-lang/minic"
	"github.com/minic-lang/minic/ast"
)

func newASTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a program",
		Long: `Print the syntax tree of a program.

The json format prints one object per node, named by its "node" field.
The dump format prints the Go values of the tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: astHandler,
	}
	cmd.Flags().StringP("output", "o", "json", "output format (json, dump)")
	cmd.Flags().Bool("positions", false, "include line and column numbers in json output")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]string{"json", "dump"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func astHandler(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	program, diags, err := minic.Parse(cmd.Context(), src.code,
		minic.WithFilename(src.filename),
		minic.WithLogger(newLogger(cmd.ErrOrStderr())),
		minic.WithMaxErrors(viper.GetInt("max-errors")))
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		printDiagnostics(cmd.ErrOrStderr(), diags, src.code)
		return errInvalid
	}

	out := cmd.OutOrStdout()
	switch format, _ := cmd.Flags().GetString("output"); format {
	case "json":
		positions, _ := cmd.Flags().GetBool("positions")
		data, err := getOutputJSON(ast.ToMap(program, positions))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "dump":
		dumpConfig.Fdump(out, program)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}
