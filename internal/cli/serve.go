package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pkgmeta/internal/server"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the validator over HTTP",
	Long: `Start an HTTP server exposing validation, migration and templates.

Endpoints:
  GET  /api/v1/health
  POST /api/v1/validate   body: document, ?migrate=true
  POST /api/v1/migrate    body: document
  POST /api/v1/template   body: overrides, ?generation=N

The server stops gracefully on SIGINT or SIGTERM.`,
	Example: `  pkgmeta serve
  pkgmeta serve --addr 127.0.0.1:9000 -v`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "Address to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(logger).ListenAndServe(ctx, serveFlags.addr)
}
