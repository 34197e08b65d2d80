// Package sources loads each input source into its canonical table:
// folder concatenation, expected-column defaulting, the ISSN unpivot,
// source-specific filtering and numeric cleaning, and row-wise
// deduplication. Every loader is total over missing folders and
// malformed files — the worst outcome is an empty table.
package sources

import (
	"strings"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// trimText trims surrounding whitespace from string cells, leaving
// absent and numeric cells untouched.
func trimText(v tables.Value) tables.Value {
	if v.Kind() != tables.KindString {
		return v
	}
	return tables.Str(strings.TrimSpace(v.String()))
}

// withIdentifier keeps only rows whose normalized identifier is present.
func withIdentifier(t *tables.Table) *tables.Table {
	return t.Filter(func(r tables.Row) bool {
		return !r.Get(constants.IdentifierColumn).IsAbsent()
	})
}
