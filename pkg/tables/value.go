package tables

import (
	"strconv"
	"strings"
)

// Kind identifies what a Value holds.
type Kind int

// Value kinds.
const (
	KindAbsent Kind = iota
	KindString
	KindNumber
)

// Value is a tri-state table cell: absent, string, or number.
// Absence is a first-class state, not a missing map key — reading a
// column a row does not carry yields an absent Value, never a panic.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Absent returns the absent Value.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Num returns a numeric Value.
func Num(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// IsBlank reports whether the value is absent or an empty/whitespace string.
func (v Value) IsBlank() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	default:
		return false
	}
}

// String renders the value for display and output. Absent renders as the
// empty string; numbers use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return ""
	}
}

// Float returns the numeric value and whether the value is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Equal reports whether two values are identical in kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	default:
		return true
	}
}

// fingerprint appends an unambiguous encoding of the value to b,
// used for row-level deduplication.
func (v Value) fingerprint(b *strings.Builder) {
	switch v.kind {
	case KindAbsent:
		b.WriteByte('_')
	case KindString:
		b.WriteByte('s')
		b.WriteString(v.str)
	case KindNumber:
		b.WriteByte('n')
		b.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	}
	b.WriteByte(0x1f)
}
