package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tenebris-tech/docxoutline/internal/cli/config"
	"github.com/tenebris-tech/docxoutline/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the outline API over HTTP",
		Long: `Start an HTTP server exposing outline extraction:

  POST /api/tools/get_document_outline  {"filename": "report.docx"}
  POST /api/outline                     raw .docx bytes
  GET  /healthz

Relative filenames are resolved against the working directory. The server
stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Extractor: newExtractor(cfg, logger),
				Logger:    logger,
				Addr:      cfg.Addr,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Listen address")

	return cmd
}
