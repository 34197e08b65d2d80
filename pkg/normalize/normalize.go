// Package normalize canonicalizes the identifiers the pipeline joins on:
// ISSN strings, publisher agreement keys, and journal names. All functions
// are total and deterministic — malformed input yields an absent value or
// an empty string, never an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

var (
	issnRe     = regexp.MustCompile(`^\s*(\d{4})-?(\d{3}[\dxX])\s*$`)
	nonISSNRe  = regexp.MustCompile(`[^0-9Xx]`)
	nonAlnumRe = regexp.MustCompile(`[^A-Z0-9 ]+`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

// ISSN returns the identifier in NNNN-NNNN form where possible,
// otherwise absent. Accepted inputs include "1234-567X", "1234567X" and
// "1234 567X"; a blank value or a lone dash is absent.
func ISSN(v tables.Value) tables.Value {
	if v.IsAbsent() {
		return tables.Absent()
	}
	s := strings.TrimSpace(v.String())
	if s == "" || s == "-" {
		return tables.Absent()
	}
	if m := issnRe.FindStringSubmatch(s); m != nil {
		return tables.Str(strings.ToUpper(m[1] + "-" + m[2]))
	}
	// Sometimes ISSNs are stored like "12345678" or "1234 5678".
	digits := nonISSNRe.ReplaceAllString(s, "")
	if len(digits) == 8 {
		return tables.Str(strings.ToUpper(digits[:4] + "-" + digits[4:]))
	}
	return tables.Absent()
}

// AgreementKey canonicalizes a publisher agreement name into the key the
// agreement-metadata join uses: NFKC-normalized, all whitespace and
// control characters removed, uppercased. Absent input yields "".
// Idempotent.
func AgreementKey(v tables.Value) string {
	if v.IsAbsent() {
		return ""
	}
	s := norm.NFKC.String(v.String())
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// JournalName derives the key used to group identifiers belonging to the
// same journal: uppercased, every character outside [A-Z0-9 ] replaced
// by a space, runs of spaces collapsed, trimmed. Idempotent.
func JournalName(v tables.Value) string {
	if v.IsAbsent() {
		return ""
	}
	s := strings.ToUpper(strings.TrimSpace(v.String()))
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// Number coerces a value to a number, locale-safely: commas are treated
// as decimal separators ("1,234" parses as 1.234). Values that do not
// parse become absent; numbers pass through unchanged.
func Number(v tables.Value) tables.Value {
	if _, ok := v.Float(); ok {
		return v
	}
	if v.IsBlank() {
		return tables.Absent()
	}
	s := strings.TrimSpace(strings.ReplaceAll(v.String(), ",", "."))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return tables.Absent()
	}
	return tables.Num(f)
}
