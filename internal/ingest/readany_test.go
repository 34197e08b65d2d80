package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/ingest"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadAnyCommaCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "Journal Name,ISSN\nAlpha,1234-567X\nBeta,\n")

	tb, err := ingest.ReadAny(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Journal Name", "ISSN"}, tb.Columns)
	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "Alpha", tb.Rows[0].Get("Journal Name").String())
	// Blank cells read as absent.
	assert.True(t, tb.Rows[1].Get("ISSN").IsAbsent())
}

func TestReadAnySniffsSemicolons(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "Journal Name;ISSN\nAlpha;1234-567X\n")

	tb, err := ingest.ReadAny(path, "")
	require.NoError(t, err)
	assert.Equal(t, "1234-567X", tb.Rows[0].Get("ISSN").String())
}

func TestReadAnySniffsTabsInTxt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.txt", "Journal Name\tISSN\nAlpha\t1234-567X\n")

	tb, err := ingest.ReadAny(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", tb.Rows[0].Get("Journal Name").String())
}

func TestReadAnyStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "\ufeffJournal Name,ISSN\nAlpha,1234-567X\n")

	tb, err := ingest.ReadAny(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Journal Name", "ISSN"}, tb.Columns)
}

func TestReadAnyUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.docx", "nope")

	_, err := ingest.ReadAny(path, "")
	assert.ErrorIs(t, err, errors.ErrUnsupportedFile)
}

func TestReadAnyEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "")

	_, err := ingest.ReadAny(path, "")
	assert.ErrorIs(t, err, errors.ErrEmptyFile)
}

func TestConcatFolderTagsSourceAndSortsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_second.csv", "Journal Name\nBeta\n")
	writeFile(t, dir, "a_first.csv", "Journal Name\nAlpha\n")
	writeFile(t, dir, "notes.docx", "ignored")

	tb := ingest.ConcatFolder(dir, "", logging.Default())
	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "Alpha", tb.Rows[0].Get("Journal Name").String())
	assert.Equal(t, "a_first", tb.Rows[0].Get(constants.SourceColumn).String())
	assert.Equal(t, "b_second", tb.Rows[1].Get(constants.SourceColumn).String())
}

func TestConcatFolderSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.xls", "not a workbook")
	writeFile(t, dir, "good.csv", "Journal Name\nAlpha\n")

	tb := ingest.ConcatFolder(dir, "", logging.Default())
	require.Equal(t, 1, tb.Len())
	assert.Equal(t, "good", tb.Rows[0].Get(constants.SourceColumn).String())
}

func TestConcatFolderMissingFolder(t *testing.T) {
	tb := ingest.ConcatFolder(filepath.Join(t.TempDir(), "absent"), "", logging.Default())
	assert.True(t, tb.Empty())
}
