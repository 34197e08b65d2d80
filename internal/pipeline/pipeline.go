// Package pipeline orchestrates one batch run: load every source,
// merge and reconcile, shape the output, and write the CSV and summary
// artifacts. The run is single-threaded and synchronous; a successful
// run always writes an output file, even when sources contributed
// nothing.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/sources"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/reconcile"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/report"
)

// SummaryFileName is written next to the output CSV.
const SummaryFileName = "summary_report.md"

// Config is the runtime configuration of one pipeline run.
type Config struct {
	// InputRoot is the folder containing the per-source subfolders.
	InputRoot string

	// OutputPath is where the final CSV is written.
	OutputPath string

	// SheetName optionally overrides Excel sheet selection; empty means
	// the first sheet of each workbook.
	SheetName string

	// Years are the reporting years embedded in output column labels.
	Years report.Years
}

// Run executes the pipeline. The only fatal pre-flight condition is a
// missing input root; everything downstream degrades per source or per
// file instead of failing the run.
func Run(ctx context.Context, cfg Config, log *zerolog.Logger) (report.Summary, error) {
	if info, err := os.Stat(cfg.InputRoot); err != nil || !info.IsDir() {
		return report.Summary{}, errors.WrapFile(cfg.InputRoot, errors.ErrInputRootMissing)
	}
	if err := ctx.Err(); err != nil {
		return report.Summary{}, err
	}

	journals := sources.Journals(cfg.InputRoot, cfg.SheetName, log)
	scimago := sources.SCImago(cfg.InputRoot, cfg.SheetName, log)
	jcr := sources.JCR(cfg.InputRoot, cfg.SheetName, log)
	citescore := sources.CiteScore(cfg.InputRoot, cfg.SheetName, log)
	caplink := sources.CapLink(cfg.InputRoot, cfg.SheetName, log)

	log.Info().
		Int("journals", journals.Len()).
		Int("scimago", scimago.Len()).
		Int("jcr", jcr.Len()).
		Int("citescore", citescore.Len()).
		Int("caplink", caplink.Len()).
		Msg("Loaded sources")

	if err := ctx.Err(); err != nil {
		return report.Summary{}, err
	}

	merged := reconcile.New(reconcile.WithLogger(log)).
		Merge(journals, scimago, jcr, citescore)
	final := report.NewShaper(cfg.Years, report.WithLogger(log)).
		Shape(merged, caplink)

	if err := report.WriteCSV(cfg.OutputPath, final); err != nil {
		return report.Summary{}, err
	}
	log.Info().Str("path", cfg.OutputPath).Int("rows", final.Len()).Msg("Wrote output")

	summary := report.Summarize(final, cfg.Years)
	summaryPath := filepath.Join(filepath.Dir(cfg.OutputPath), SummaryFileName)
	if err := summary.WriteMarkdown(summaryPath); err != nil {
		return summary, err
	}
	log.Info().Str("path", summaryPath).Msg("Wrote summary report")
	return summary, nil
}
