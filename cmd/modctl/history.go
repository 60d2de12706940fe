package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/contentguard-api/internal/models"
	"github.com/noah-isme/contentguard-api/internal/service"
)

var exportOpts struct {
	format string
	out    string
	filter models.HistoryFilter
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect moderation history",
}

var historyExportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Render the filtered moderation history to a CSV or PDF file",
	Example: "  modctl history export --format pdf --decision rejected --out rejected.pdf",
	RunE:    runHistoryExport,
}

func init() {
	flags := historyExportCmd.Flags()
	flags.StringVar(&exportOpts.format, "format", "csv", "output format: csv or pdf")
	flags.StringVar(&exportOpts.out, "out", "", "output file")
	flags.StringVar(&exportOpts.filter.Search, "search", "", "search author, text, moderator and notes")
	flags.StringVar(&exportOpts.filter.DateRange, "range", "all", "today, week, month or all")
	flags.StringVar(&exportOpts.filter.ContentType, "type", "all", "image, video, comment or all")
	flags.StringVar(&exportOpts.filter.Decision, "decision", "all", "approved, rejected or all")
	flags.StringVar(&exportOpts.filter.Platform, "platform", "all", "platform or all")
	_ = historyExportCmd.MarkFlagRequired("out")
	historyCmd.AddCommand(historyExportCmd)
}

func runHistoryExport(cmd *cobra.Command, _ []string) error {
	format := models.ExportFormat(strings.ToLower(exportOpts.format))
	if format != models.ExportFormatCSV && format != models.ExportFormatPDF {
		return fmt.Errorf("unsupported format %q", exportOpts.format)
	}

	ctx := cmd.Context()
	container, logr, err := buildContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Close() //nolint:errcheck
	defer logr.Sync()       //nolint:errcheck

	items, err := container.History.Collect(ctx, exportOpts.filter)
	if err != nil {
		return err
	}
	renderer := service.NewExportService(nil, nil, service.ExportConfig{}, logr, nil, nil)
	payload, err := renderer.Render(format, items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOpts.out, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOpts.out, err)
	}

	logr.Info("history exported", zap.String("path", exportOpts.out), zap.Int("rows", len(items)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(items), exportOpts.out)
	return nil
}
