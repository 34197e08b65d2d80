package sources

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/ingest"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// CapLink loads the optional agreement-metadata source. An absent or
// empty folder yields an empty table meaning "no enrichment available".
// The agreement key is recomputed from the Agreement column with the
// same normalization the journal list uses, so the later join matches.
func CapLink(root, sheet string, log *zerolog.Logger) *tables.Table {
	t := ingest.ConcatFolder(filepath.Join(root, constants.CapLinkFolder), sheet, log)
	if t.Empty() {
		return t
	}

	if !t.HasColumn(constants.AgreementColumn) {
		log.Warn().Str("column", constants.AgreementColumn).
			Msg("Agreement column missing in Cap and Link data")
		return t
	}

	t.EnsureColumns(constants.AgreementKeyColumn)
	for _, r := range t.Rows {
		r.Set(constants.AgreementKeyColumn, tables.Str(normalize.AgreementKey(r.Get(constants.AgreementColumn))))
	}
	return t
}
