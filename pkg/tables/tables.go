// Package tables provides the in-memory table abstraction the pipeline
// operates on: an ordered set of named columns over rows of tri-state
// cells (absent, string, or number), plus the small relational algebra
// the loaders and the reconciliation engine need — column selection and
// renaming, filtering, left joins with fan-out, and row deduplication.
//
// Every operation is total over missing data: reading a column a row
// does not carry yields an absent Value, and joins never match on
// absent keys.
package tables

import (
	"strings"
)

// Row maps column names to cell values. Use Get rather than direct
// indexing so missing columns read as absent.
type Row map[string]Value

// Get returns the value for column name, or absent if the row does not
// carry it.
func (r Row) Get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Absent()
}

// Set assigns the value for column name.
func (r Row) Set(name string, v Value) {
	r[name] = v
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows sharing a declared column order.
// Rows may omit columns; omitted cells read as absent.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddRow appends a row to the table.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// EnsureColumns declares any missing columns. Existing rows read absent
// for the new columns; no cell data is written.
func (t *Table) EnsureColumns(names ...string) {
	for _, n := range names {
		if !t.HasColumn(n) {
			t.Columns = append(t.Columns, n)
		}
	}
}

// SetColumn writes the same value into the named column of every row,
// declaring the column if needed.
func (t *Table) SetColumn(name string, v Value) {
	t.EnsureColumns(name)
	for _, r := range t.Rows {
		r.Set(name, v)
	}
}

// Apply transforms the named column in place, declaring it if needed.
func (t *Table) Apply(name string, fn func(Value) Value) {
	t.EnsureColumns(name)
	for _, r := range t.Rows {
		r.Set(name, fn(r.Get(name)))
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		out.Rows = append(out.Rows, r.Clone())
	}
	return out
}

// Select returns a new table containing only the named columns that the
// table actually declares, in the given order.
func (t *Table) Select(names ...string) *Table {
	var keep []string
	for _, n := range names {
		if t.HasColumn(n) {
			keep = append(keep, n)
		}
	}
	out := New(keep...)
	for _, r := range t.Rows {
		nr := make(Row, len(keep))
		for _, c := range keep {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.AddRow(nr)
	}
	return out
}

// Rename returns a new table with columns renamed per mapping. Cell data
// moves with the column; names absent from the mapping are unchanged.
func (t *Table) Rename(mapping map[string]string) *Table {
	out := New()
	for _, c := range t.Columns {
		if to, ok := mapping[c]; ok {
			out.Columns = append(out.Columns, to)
		} else {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			if to, ok := mapping[k]; ok {
				nr[to] = v
			} else {
				nr[k] = v
			}
		}
		out.AddRow(nr)
	}
	return out
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.Columns...)
	for _, r := range t.Rows {
		if keep(r) {
			out.AddRow(r)
		}
	}
	return out
}

// Append concatenates other onto t, unioning column sets. Column order is
// t's columns followed by other's new columns, mirroring a vertical
// concat of heterogeneous files.
func (t *Table) Append(other *Table) {
	t.EnsureColumns(other.Columns...)
	t.Rows = append(t.Rows, other.Rows...)
}

// fingerprintRow encodes a row over the given columns for deduplication.
func fingerprintRow(r Row, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		r.Get(c).fingerprint(&b)
	}
	return b.String()
}

// DropDuplicates returns a new table with exact duplicate rows (over all
// declared columns) removed, keeping the first occurrence.
func (t *Table) DropDuplicates() *Table {
	return t.DropDuplicatesBy(t.Columns...)
}

// DropDuplicatesBy returns a new table with rows deduplicated on the
// named columns, keeping the first occurrence. Row order is preserved.
func (t *Table) DropDuplicatesBy(columns ...string) *Table {
	out := New(t.Columns...)
	seen := make(map[string]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		key := fingerprintRow(r, columns)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.AddRow(r)
	}
	return out
}

// LeftJoin joins t against right on the named key column. Every left row
// is preserved; each matching right row fans the left row out into one
// output row. Absent or blank keys never match. Right columns other than
// the key are carried over; names colliding with left columns are
// disambiguated with suffix.
func (t *Table) LeftJoin(right *Table, on, suffix string) *Table {
	// Right columns carried into the output, with collision renames.
	var rightCols []string
	renames := make(map[string]string)
	for _, c := range right.Columns {
		if c == on {
			continue
		}
		name := c
		if t.HasColumn(c) {
			name = c + suffix
			renames[c] = name
		}
		rightCols = append(rightCols, name)
	}

	index := make(map[string][]Row)
	if right.HasColumn(on) {
		for _, r := range right.Rows {
			k := r.Get(on)
			if k.IsBlank() {
				continue
			}
			index[k.String()] = append(index[k.String()], r)
		}
	}

	out := New(t.Columns...)
	out.EnsureColumns(rightCols...)
	for _, lr := range t.Rows {
		k := lr.Get(on)
		var matches []Row
		if !k.IsBlank() {
			matches = index[k.String()]
		}
		if len(matches) == 0 {
			out.AddRow(lr.Clone())
			continue
		}
		for _, rr := range matches {
			nr := lr.Clone()
			for _, c := range right.Columns {
				if c == on {
					continue
				}
				name := c
				if to, ok := renames[c]; ok {
					name = to
				}
				if v, ok := rr[c]; ok {
					nr[name] = v
				}
			}
			out.AddRow(nr)
		}
	}
	return out
}
