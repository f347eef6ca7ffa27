package main

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// source is the program text a command operates on.
type source struct {
	code     string
	filename string
}

// getSource reads the program from exactly one of a file argument, the
// --code flag or stdin. A --code value from the config file or environment
// is used only when no other source is given.
func getSource(cmd *cobra.Command, args []string) (source, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	stdinFlagSet := viper.GetBool("stdin")
	pathSupplied := len(args) > 0
	// Error if multiple input sources are specified
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return source{}, stderrors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return source{}, stderrors.New("multiple input sources specified")
	}
	if stdinFlagSet {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return source{}, err
		}
		return source{code: string(data), filename: "<stdin>"}, nil
	} else if pathSupplied {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return source{}, err
		}
		return source{code: string(bytes), filename: args[0]}, nil
	}
	code := viper.GetString("code")
	if code == "" {
		return source{}, stderrors.New("no input provided (pass a file, --code or --stdin)")
	}
	return source{code: code}, nil
}
