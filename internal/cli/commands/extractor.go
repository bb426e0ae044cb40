package commands

import (
	"log/slog"

	"github.com/tenebris-tech/docxoutline/internal/cli/config"
	"github.com/tenebris-tech/docxoutline/outline"
)

// extractorOptions translates the loaded config into extractor options
func extractorOptions(cfg *config.Config, logger *slog.Logger) []outline.Option {
	opts := []outline.Option{
		outline.WithHeadingStyles(cfg.HeadingStyles...),
		outline.WithLogger(logger),
	}
	if cfg.Verbose {
		opts = append(opts,
			outline.WithOnDocumentParsed(func(n int) {
				logger.Debug("document parsed", "paragraphs", n)
			}),
			outline.WithOnStylesParsed(func(n int) {
				logger.Debug("styles parsed", "styles", n)
			}),
			outline.WithOnNumberingParsed(func(abstracts, instances int) {
				logger.Debug("numbering parsed", "abstracts", abstracts, "instances", instances)
			}),
		)
	}
	return opts
}

func newExtractor(cfg *config.Config, logger *slog.Logger) *outline.Extractor {
	return outline.New(extractorOptions(cfg, logger)...)
}
