package sources

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/internal/ingest"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// journalColumns are the columns the base journal list is expected to
// carry; missing ones are declared as all-absent.
var journalColumns = []string{
	constants.JournalNameColumn,
	"Journal Type",
	"Journal Website",
	"Publisher Name",
	constants.AgreementColumn,
	"Field of Research",
	"ISSN",
	"eISSN",
	constants.EligibilityColumn,
}

// journalKeep is the canonical schema of the loaded journal list.
var journalKeep = []string{
	constants.SourceColumn,
	constants.JournalNameColumn,
	"Journal Type",
	"Journal Website",
	"Publisher Name",
	constants.AgreementColumn,
	"Field of Research",
	constants.IdentifierColumn,
	constants.AgreementKeyColumn,
	constants.EligibilityColumn,
	constants.CleanNameColumn,
}

// Journals loads the base journal list: unpivots the ISSN/eISSN columns,
// computes the agreement key and clean journal name, and keeps only rows
// whose eligibility flag normalizes to "Y".
func Journals(root, sheet string, log *zerolog.Logger) *tables.Table {
	t := ingest.ConcatFolder(filepath.Join(root, constants.JournalListFolder), sheet, log)
	if t.Empty() {
		return t
	}
	t.EnsureColumns(journalColumns...)

	t = ingest.UnpivotISSNs(t)

	t.EnsureColumns(constants.AgreementKeyColumn)
	for _, r := range t.Rows {
		r.Set(constants.AgreementKeyColumn, tables.Str(normalize.AgreementKey(r.Get(constants.AgreementColumn))))
	}

	t.Apply(constants.EligibilityColumn, func(v tables.Value) tables.Value {
		if v.IsAbsent() {
			return v
		}
		return tables.Str(strings.ToUpper(strings.TrimSpace(v.String())))
	})
	t = t.Filter(func(r tables.Row) bool {
		return r.Get(constants.EligibilityColumn).String() == constants.EligibilityYes
	})

	t.EnsureColumns(constants.CleanNameColumn)
	for _, r := range t.Rows {
		r.Set(constants.CleanNameColumn, tables.Str(normalize.JournalName(r.Get(constants.JournalNameColumn))))
	}

	for _, c := range []string{constants.AgreementColumn, constants.JournalNameColumn, constants.IdentifierColumn} {
		t.Apply(c, trimText)
	}

	return t.Select(journalKeep...).DropDuplicates()
}
