package ingest

import (
	"strings"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// UnpivotISSNs transforms a table with any number of identifier-bearing
// columns (names containing "issn", case-insensitive) into long form
// with exactly one normalized identifier column. Each identifier column
// produces a copy of every row; comma-delimited identifier cells are
// exploded into one row per part; every identifier is then normalized.
// Rows whose identifier normalizes to absent are retained.
//
// A table with no identifier columns gains a single all-absent
// identifier column and is otherwise unchanged.
func UnpivotISSNs(t *tables.Table) *tables.Table {
	var issnCols, metaCols []string
	for _, c := range t.Columns {
		if strings.Contains(strings.ToLower(c), "issn") {
			issnCols = append(issnCols, c)
		} else {
			metaCols = append(metaCols, c)
		}
	}

	if len(issnCols) == 0 {
		out := t.Clone()
		out.EnsureColumns(constants.IdentifierColumn)
		return out
	}

	out := tables.New(append(append([]string(nil), metaCols...), constants.IdentifierColumn)...)
	for _, col := range issnCols {
		for _, r := range t.Rows {
			raw := r.Get(col)
			for _, part := range splitIdentifiers(raw) {
				nr := make(tables.Row, len(metaCols)+1)
				for _, mc := range metaCols {
					if v, ok := r[mc]; ok {
						nr[mc] = v
					}
				}
				if id := normalize.ISSN(part); !id.IsAbsent() {
					nr[constants.IdentifierColumn] = id
				}
				out.AddRow(nr)
			}
		}
	}
	return out
}

// splitIdentifiers splits a cell that may encode several identifiers as
// a comma-delimited string. An absent cell yields a single absent part.
func splitIdentifiers(v tables.Value) []tables.Value {
	if v.IsAbsent() {
		return []tables.Value{tables.Absent()}
	}
	parts := strings.Split(v.String(), ",")
	out := make([]tables.Value, len(parts))
	for i, p := range parts {
		out[i] = tables.Str(p)
	}
	return out
}
