// Command minic lexes, parses and checks programs written in minic.
package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time variables, set via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errInvalid is returned by commands whose input failed analysis. The
// diagnostics have already been printed.
var errInvalid = stderrors.New("invalid program")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetOut(colorable.NewColorableStdout())
	cmd.SetErr(colorable.NewColorableStderr())
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		if !stderrors.Is(err, errInvalid) {
			fatal(err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "minic",
		Short: "Lex, parse and check minic programs",
		Long: `minic is the front end of a compiler for a small C-like language.
It reports lexical, syntax, name, type and control flow errors in a program.

Source is read from a file argument, the --code flag or stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			if err := initConfig(cfgFile); err != nil {
				return err
			}
			processGlobalFlags()
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.minic.yaml)")
	flags.StringP("code", "c", "", "source code to analyze")
	flags.Bool("stdin", false, "read source code from stdin")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Int("max-errors", 0, "stop parsing after this many syntax errors (0 for the default)")
	if err := bindFlags(flags, "", "code", "stdin", "no-color", "log-level", "max-errors"); err != nil {
		panic(err)
	}

	root.AddCommand(
		newTokensCmd(),
		newASTCmd(),
		newCheckCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// initConfig reads the config file and environment. A missing default
// config file is not an error.
func initConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".minic")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("minic")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !stderrors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
