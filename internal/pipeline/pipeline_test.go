package pipeline_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/pipeline"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/report"
)

var testYears = report.Years{JournalList: 2024, SCImago: 2024, JCR: 2024, CiteScore: 2024, CapLink: 2024}

func writeSource(t *testing.T, root, folder, name, content string) {
	t.Helper()
	dir := filepath.Join(root, folder)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readCSV(t *testing.T, path string) (header []string, rows [][]string) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	all, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)
	return all[0], all[1:]
}

func column(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.JournalListFolder, "journals.csv",
		"Journal Name,ISSN,eISSN,Journal Website,Publisher Name,Agreement,Field of Research,La Trobe University\n"+
			"Test Journal,1234-567X,,http://testjournal.com,Test Publisher,Read & Publish,Library Science,Y\n")
	writeSource(t, root, constants.SCImagoFolder, "scimago.csv",
		"Issn,SJR,SJR Best Quartile,H index,Categories\n"+
			"1234-567X,1.5,Q1,42,Education; Library Science\n")
	writeSource(t, root, constants.JCRFolder, "jcr.csv",
		"ISSN,Impact Factor,5-year Impact Factor\n1234-567X,2.0,2.5\n")
	writeSource(t, root, constants.CiteScoreFolder, "citescore.csv",
		"ISSN,CiteScore,SNIP\n1234-567X,3.0,1.2\n")
	writeSource(t, root, constants.CapLinkFolder, "cap.csv",
		"Agreement,Agreement type,Link,Publisher data,Capped agreement approval statistics\n"+
			"Read & Publish,Transformative,http://example.com,Some data,Approved\n")

	out := filepath.Join(t.TempDir(), "out", "final.csv")
	summary, err := pipeline.Run(context.Background(), pipeline.Config{
		InputRoot:  root,
		OutputPath: out,
		Years:      testYears,
	}, logging.Default())
	require.NoError(t, err)

	header, rows := readCSV(t, out)
	require.Len(t, rows, 1)
	row := rows[0]

	get := func(name string) string {
		i := column(header, name)
		require.GreaterOrEqual(t, i, 0, "column %s missing", name)
		return row[i]
	}
	assert.Equal(t, "Test Journal", get("Journal Name"))
	assert.Equal(t, "1234-567X", get("ISSN/s"))
	assert.Equal(t, "http://testjournal.com", get("Journal Website"))
	assert.Equal(t, "2", get("JIF (JCR, 2024)"))
	assert.Equal(t, "2.5", get("5-Year JIF (JCR, 2024)"))
	assert.Equal(t, "3", get("CiteScore (Scopus, 2024)"))
	assert.Equal(t, "1.2", get("SNIP (Scopus, 2024)"))
	assert.Equal(t, "1.5", get("SJR (SCImago, 2024)"))
	assert.Equal(t, "Q1", get("Best SJR Quartile (SCImago, 2024)"))
	assert.Equal(t, "42", get("H-Index (SCImago, 2024)"))
	assert.Equal(t, "Education\nLibrary Science", get("Categories (SCImago, 2024)"))
	assert.Equal(t, "http://example.com", get("Agreement link"))
	assert.Equal(t, "Transformative", get("Agreement type"))

	assert.Equal(t, 1, summary.TotalJournals)
	assert.Equal(t, 1, summary.UniquePublishers)
	assert.Equal(t, 0, summary.MissingJIF)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(out), pipeline.SummaryFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "R&P Pipeline Summary Report")
}

func TestRunWithEmptyMetricsSources(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.JournalListFolder, "journals.csv",
		"Journal Name,ISSN,Agreement,La Trobe University\n"+
			"Lonely Journal,1234-567X,Read & Publish,Y\n")

	out := filepath.Join(t.TempDir(), "final.csv")
	summary, err := pipeline.Run(context.Background(), pipeline.Config{
		InputRoot:  root,
		OutputPath: out,
		Years:      testYears,
	}, logging.Default())
	require.NoError(t, err)

	header, rows := readCSV(t, out)
	require.Len(t, rows, 1)
	i := column(header, "JIF (JCR, 2024)")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, "N/A", rows[0][i])
	assert.Equal(t, 1, summary.MissingJIF)
}

func TestRunMissingInputRootIsFatal(t *testing.T) {
	_, err := pipeline.Run(context.Background(), pipeline.Config{
		InputRoot:  filepath.Join(t.TempDir(), "nope"),
		OutputPath: filepath.Join(t.TempDir(), "final.csv"),
		Years:      testYears,
	}, logging.Default())
	assert.ErrorIs(t, err, errors.ErrInputRootMissing)
}
