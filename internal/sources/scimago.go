package sources

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/ingest"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// SCImago loads the SCImago journal rank export: SJR, best quartile,
// H index and subject categories keyed by normalized ISSN. Rows without
// an identifier are dropped.
func SCImago(root, sheet string, log *zerolog.Logger) *tables.Table {
	t := ingest.ConcatFolder(filepath.Join(root, constants.SCImagoFolder), sheet, log)
	if t.Empty() {
		return t
	}
	t.EnsureColumns("SJR", "SJR Best Quartile", "H index", "Issn", "Categories")

	t = ingest.UnpivotISSNs(t)
	t.Apply("SJR", normalize.Number)

	t = t.Select(constants.SourceColumn, constants.IdentifierColumn,
		"SJR", "SJR Best Quartile", "H index", "Categories")
	return withIdentifier(t).DropDuplicates()
}
