package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tenebris-tech/docxoutline/convert"
	"github.com/tenebris-tech/docxoutline/internal/cli/config"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file-or-directory>...",
		Short: "Write outline files for many documents",
		Long: `Write an outline file next to each DOCX document, named
<name>.docx.outline.<ext> after the selected output format.

Directories require --recursive. Existing outline files are skipped unless
--skip-existing=false, in which case a numbered name is chosen.`,
		Example: `  docxoutline batch contracts/ -r -o json
  docxoutline batch a.docx b.docx --output-dir outlines --workers 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())
			stderr := cmd.ErrOrStderr()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var rows []table.Row
			c := convert.New(
				convert.WithRecursion(cfg.Recursive),
				convert.WithSkipExisting(cfg.SkipExisting),
				convert.WithOutputDirectory(cfg.OutputDir),
				convert.WithFormat(cfg.OutputFormat()),
				convert.WithWorkers(cfg.Workers),
				convert.WithExtractorOptions(extractorOptions(cfg, logger)...),
				convert.WithLogger(logger),
				convert.WithOnFileComplete(func(path, outputPath string, headings int, err error) {
					if err != nil {
						rows = append(rows, table.Row{filepath.Base(path), "failed", err.Error()})
						return
					}
					rows = append(rows, table.Row{filepath.Base(path), headings, outputPath})
				}),
				convert.WithOnFileSkipped(func(path, outputPath, reason string) {
					rows = append(rows, table.Row{filepath.Base(path), "skipped", reason})
				}),
			)

			total := convert.Result{}
			for _, arg := range args {
				result, err := c.Convert(ctx, arg)
				if result != nil {
					total.Converted += result.Converted
					total.Skipped += result.Skipped
					total.Failed += result.Failed
					total.Errors = append(total.Errors, result.Errors...)
				}
				if err != nil {
					if ctx.Err() != nil {
						return err
					}
					total.Failed++
					total.Errors = append(total.Errors, err)
				}
			}

			if cfg.Verbose || total.Failed > 0 {
				t := table.NewWriter()
				t.SetOutputMirror(stderr)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"File", "Headings", "Output"})
				t.AppendRows(rows)
				t.Render()
			}

			_, _ = fmt.Fprintf(stderr, "Converted: %d, Skipped: %d, Failed: %d\n",
				total.Converted, total.Skipped, total.Failed)

			if total.Failed > 0 {
				return fmt.Errorf("%d file(s) failed: %w", total.Failed, errors.Join(total.Errors...))
			}
			return nil
		},
	}

	cmd.Flags().BoolP("recursive", "r", false, "Process directories recursively")
	cmd.Flags().Bool("skip-existing", true, "Skip documents whose outline file already exists")
	cmd.Flags().String("output-dir", "", "Write all outline files to this directory")
	cmd.Flags().Int("workers", config.DefaultWorkers, "Number of documents processed at once")

	return cmd
}
