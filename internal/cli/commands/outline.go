// Package commands implements the docxoutline subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tenebris-tech/docxoutline/internal/cli/config"
	"github.com/tenebris-tech/docxoutline/outline"
)

// NewOutlineCommand creates the outline command.
func NewOutlineCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "outline <file.docx>",
		Short: "Print the numbered heading outline of a document",
		Long: `Print every heading of a DOCX document together with the number
Word displays in front of it ("2.3.1 Scope").

Output formats: text (table), markdown, json, yaml. With --watch the outline
is printed again whenever the file is saved.`,
		Example: `  docxoutline outline report.docx
  docxoutline outline report.docx -o json
  docxoutline outline report.docx --heading-styles Heading,Chapter --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())
			extractor := newExtractor(cfg, logger)
			path := args[0]

			show := func() error {
				return printOutline(cmd.OutOrStdout(), logger, extractor, path, cfg.OutputFormat())
			}

			if err := show(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchFile(ctx, path, logger, show)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Print the outline again whenever the file changes")

	return cmd
}

func printOutline(w io.Writer, logger *slog.Logger, extractor *outline.Extractor, path string, format outline.OutputFormat) error {
	doc, err := extractor.ExtractFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("outline extracted", "path", doc.Path, "summary", outline.Summary(doc))
	return outline.Render(w, doc, format)
}
