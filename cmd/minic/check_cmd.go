package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minic-lang/minic"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Check a program for errors",
		Long: `Check a program for lexical, syntax, name, type and control flow errors.

Prints "valid" when the program has no errors. Otherwise every error is
printed and the exit status is 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: checkHandler,
	}
}

func checkHandler(cmd *cobra.Command, args []string) error {
	src, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	result, err := minic.Analyze(cmd.Context(), src.code,
		minic.WithFilename(src.filename),
		minic.WithLogger(newLogger(cmd.ErrOrStderr())),
		minic.WithMaxErrors(viper.GetInt("max-errors")))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if result.Valid() {
		fmt.Fprintln(out, "valid")
		return nil
	}
	printDiagnostics(out, result.Diagnostics, src.code)
	return errInvalid
}
