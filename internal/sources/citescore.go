package sources

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/ingest"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// CiteScore loads the Elsevier CiteScore export: CiteScore and SNIP
// keyed by normalized ISSN, plus the title and open-access flag where
// present. Rows without an identifier are dropped.
func CiteScore(root, sheet string, log *zerolog.Logger) *tables.Table {
	t := ingest.ConcatFolder(filepath.Join(root, constants.CiteScoreFolder), sheet, log)
	if t.Empty() {
		return t
	}

	t = ingest.UnpivotISSNs(t)
	t.EnsureColumns("CiteScore", "SNIP", "Title", "Open Access")
	t.Apply("CiteScore", normalize.Number)
	t.Apply("SNIP", normalize.Number)

	t = t.Select(constants.SourceColumn, constants.IdentifierColumn,
		"CiteScore", "SNIP", "Title", "Open Access")
	return withIdentifier(t).DropDuplicates()
}
