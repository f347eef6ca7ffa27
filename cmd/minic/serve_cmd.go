package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Long: `Serve the analyzer over HTTP.

POST /run_code accepts {"code": "...", "lines": N} and responds with the
token stream when the program is valid, or with the errors found. Pass
?format=lsp to receive errors as Language Server Protocol diagnostics.`,
		Args: cobra.NoArgs,
		RunE: serveHandler,
	}
	flags := cmd.Flags()
	flags.String("addr", ":8080", "address to listen on")
	flags.Int("cache-size", 256, "number of analysis results to cache")
	flags.StringSlice("cors-origins", []string{"*"}, "origins allowed to call the server")
	if err := bindFlags(flags, "serve.", "addr", "cache-size", "cors-origins"); err != nil {
		panic(err)
	}
	return cmd
}

func serveHandler(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())
	srv, err := newServer(serverConfig{
		CacheSize:   viper.GetInt("serve.cache-size"),
		CORSOrigins: viper.GetStringSlice("serve.cors-origins"),
		MaxErrors:   viper.GetInt("max-errors"),
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              viper.GetString("serve.addr"),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := cmd.Context()
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
