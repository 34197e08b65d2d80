package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/pipeline"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/report"
)

// yearFlags maps each reporting-year flag to its prompt label. The
// years are string labels in output column names only; they never
// change join or filter behavior.
var yearFlags = []struct {
	flag  string
	label string
}{
	{"journal-list-year", "Journal List (CAUL)"},
	{"scimago-year", "SCImago (Scopus)"},
	{"jcr-year", "JCR"},
	{"citescore-year", "CiteScore (Elsevier)"},
	{"caplink-year", "Cap and Link (CAUL)"},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the metrics pipeline",
	Long: `Run loads every source folder under the input root, merges the
journal list with the three citation-metrics sources and the agreement
metadata, and writes the final CSV and a markdown summary report.

Reporting years not given as flags are prompted for interactively.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("input-root", "", "root folder containing the data subfolders")
	runCmd.Flags().String("out", "", "output CSV path")
	runCmd.Flags().String("sheet-name", "", "optional Excel sheet name to read from")
	for _, yf := range yearFlags {
		runCmd.Flags().Int(yf.flag, 0, "year for "+yf.label)
	}

	cobra.CheckErr(runCmd.MarkFlagRequired("input-root"))
	cobra.CheckErr(runCmd.MarkFlagRequired("out"))
	cobra.CheckErr(viper.BindPFlags(runCmd.Flags()))
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	log := logging.Default()

	years, err := collectYears(cmd)
	if err != nil {
		return err
	}

	cfg := pipeline.Config{
		InputRoot:  viper.GetString("input-root"),
		OutputPath: viper.GetString("out"),
		SheetName:  viper.GetString("sheet-name"),
		Years:      years,
	}
	log.Info().Str("input", cfg.InputRoot).Str("output", cfg.OutputPath).Msg("Starting R&P pipeline")

	summary, err := pipeline.Run(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	return summary.Render(cmd.OutOrStdout())
}

// collectYears resolves the five reporting years from flags, config, or
// an interactive prompt, in that order.
func collectYears(cmd *cobra.Command) (report.Years, error) {
	values := make([]int, len(yearFlags))
	reader := bufio.NewReader(cmd.InOrStdin())
	for i, yf := range yearFlags {
		y := viper.GetInt(yf.flag)
		if y == 0 {
			var err error
			y, err = promptYear(cmd, reader, yf.label)
			if err != nil {
				return report.Years{}, err
			}
		}
		values[i] = y
	}
	return report.Years{
		JournalList: values[0],
		SCImago:     values[1],
		JCR:         values[2],
		CiteScore:   values[3],
		CapLink:     values[4],
	}, nil
}

func promptYear(cmd *cobra.Command, reader *bufio.Reader, label string) (int, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "Enter %s year: ", label)
	line, err := reader.ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return 0, errors.NewConfigError(label, "reporting year is required")
	}
	y, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errors.NewConfigError(label, "reporting year must be a number")
	}
	return y, nil
}
