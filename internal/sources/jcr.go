package sources

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/ingest"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// JCR loads the Journal Citation Reports export: the impact factor and
// five-year impact factor keyed by normalized ISSN. Rows without an
// identifier are dropped.
func JCR(root, sheet string, log *zerolog.Logger) *tables.Table {
	t := ingest.ConcatFolder(filepath.Join(root, constants.JCRFolder), sheet, log)
	if t.Empty() {
		return t
	}
	t.EnsureColumns("ISSN", "Impact Factor", "5-year Impact Factor")

	t = ingest.UnpivotISSNs(t)
	t.Apply("Impact Factor", normalize.Number)
	t.Apply("5-year Impact Factor", normalize.Number)

	t = t.Select(constants.SourceColumn, constants.IdentifierColumn,
		"Impact Factor", "5-year Impact Factor")
	return withIdentifier(t).DropDuplicates()
}
