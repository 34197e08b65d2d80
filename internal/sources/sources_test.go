package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/sources"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
)

// writeSource drops a CSV file into the named source folder under root.
func writeSource(t *testing.T, root, folder, name, content string) {
	t.Helper()
	dir := filepath.Join(root, folder)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestJournalsEligibilityFilter(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.JournalListFolder, "journals.csv",
		"Journal Name,ISSN,eISSN,Agreement,La Trobe University\n"+
			"Kept Journal,1234-567X,,Read & Publish,y \n"+
			"Dropped Journal,1111-2222,,Read & Publish,N\n"+
			"Unflagged Journal,3333-4444,,Read & Publish,\n")

	tb := sources.Journals(root, "", logging.Default())
	require.Equal(t, 2, tb.Len()) // one kept row per identifier column
	for _, r := range tb.Rows {
		assert.Equal(t, "Kept Journal", r.Get(constants.JournalNameColumn).String())
	}
	assert.Equal(t, "READ&PUBLISH", tb.Rows[0].Get(constants.AgreementKeyColumn).String())
	assert.Equal(t, "KEPT JOURNAL", tb.Rows[0].Get(constants.CleanNameColumn).String())
	assert.Equal(t, "1234-567X", tb.Rows[0].Get(constants.IdentifierColumn).String())
	assert.True(t, tb.Rows[1].Get(constants.IdentifierColumn).IsAbsent())
}

func TestJournalsEmptyFolder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, constants.JournalListFolder), 0o755))

	tb := sources.Journals(root, "", logging.Default())
	assert.True(t, tb.Empty())
}

func TestSCImagoDropsRowsWithoutIdentifier(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.SCImagoFolder, "scimago.csv",
		"Issn,SJR,SJR Best Quartile,H index,Categories\n"+
			"\"12345678, 87654321\",\"1,5\",Q1,42,Education; Library Science\n"+
			"not-an-issn,2.0,Q2,7,Misc\n")

	tb := sources.SCImago(root, "", logging.Default())
	require.Equal(t, 2, tb.Len()) // comma list explodes, invalid row dropped
	assert.Equal(t, "1234-5678", tb.Rows[0].Get(constants.IdentifierColumn).String())
	assert.Equal(t, "8765-4321", tb.Rows[1].Get(constants.IdentifierColumn).String())

	sjr, ok := tb.Rows[0].Get("SJR").Float()
	require.True(t, ok)
	assert.InDelta(t, 1.5, sjr, 1e-9)
}

func TestJCRNumericCoercion(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.JCRFolder, "jcr.csv",
		"ISSN,Impact Factor,5-year Impact Factor\n"+
			"1234-567X,2.0,not a number\n")

	tb := sources.JCR(root, "", logging.Default())
	require.Equal(t, 1, tb.Len())
	jif, ok := tb.Rows[0].Get("Impact Factor").Float()
	require.True(t, ok)
	assert.Equal(t, 2.0, jif)
	assert.True(t, tb.Rows[0].Get("5-year Impact Factor").IsAbsent())
}

func TestCiteScoreDeclaresMissingMetrics(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.CiteScoreFolder, "citescore.csv",
		"ISSN,CiteScore\n1234-567X,3.0\n")

	tb := sources.CiteScore(root, "", logging.Default())
	require.Equal(t, 1, tb.Len())
	assert.True(t, tb.HasColumn("SNIP"))
	assert.True(t, tb.Rows[0].Get("SNIP").IsAbsent())
}

func TestCapLinkMissingFolder(t *testing.T) {
	tb := sources.CapLink(t.TempDir(), "", logging.Default())
	assert.True(t, tb.Empty())
}

func TestCapLinkRecomputesAgreementKey(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, constants.CapLinkFolder, "cap.csv",
		"Agreement,Agreement type,Link\n"+
			"Read & Publish,Transformative,http://example.com\n")

	tb := sources.CapLink(root, "", logging.Default())
	require.Equal(t, 1, tb.Len())
	assert.Equal(t, "READ&PUBLISH", tb.Rows[0].Get(constants.AgreementKeyColumn).String())
}
