package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

func TestISSN(t *testing.T) {
	tests := []struct {
		name string
		in   tables.Value
		want string
		ok   bool
	}{
		{"already normalized", tables.Str("1234-567X"), "1234-567X", true},
		{"no separator", tables.Str("1234567X"), "1234-567X", true},
		{"space separator", tables.Str("1234 567X"), "1234-567X", true},
		{"lowercase check digit", tables.Str("1234-567x"), "1234-567X", true},
		{"surrounding whitespace", tables.Str("  0028-0836  "), "0028-0836", true},
		{"numeric cell", tables.Num(12345678), "1234-5678", true},
		{"lone dash", tables.Str("-"), "", false},
		{"empty", tables.Str(""), "", false},
		{"absent", tables.Absent(), "", false},
		{"garbage", tables.Str("invalid"), "", false},
		{"too short", tables.Str("1234-56"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.ISSN(tt.in)
			if !tt.ok {
				assert.True(t, got.IsAbsent())
				return
			}
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestISSNIdempotent(t *testing.T) {
	for _, raw := range []string{"1234-567X", "1234567X", "1234 567X", "0028-0836"} {
		once := normalize.ISSN(tables.Str(raw))
		twice := normalize.ISSN(once)
		assert.True(t, once.Equal(twice), "not idempotent for %q", raw)
	}
}

func TestAgreementKey(t *testing.T) {
	assert.Equal(t, "READ&PUBLISH", normalize.AgreementKey(tables.Str("  Read & Publish ")))
	assert.Equal(t, "", normalize.AgreementKey(tables.Absent()))
	assert.Equal(t, "READ&PUBLISH", normalize.AgreementKey(tables.Str("Read\t&\nPublish")))
	// NFKC folds compatibility characters such as the no-break space.
	assert.Equal(t, "READ&PUBLISH", normalize.AgreementKey(tables.Str("Read & Publish")))
}

func TestAgreementKeyIdempotent(t *testing.T) {
	once := normalize.AgreementKey(tables.Str("  Read & Publish "))
	assert.Equal(t, once, normalize.AgreementKey(tables.Str(once)))
}

func TestJournalName(t *testing.T) {
	assert.Equal(t, "JOURNAL OF BIOLOGY", normalize.JournalName(tables.Str("Journal of Biology!")))
	assert.Equal(t, "NATURE REVIEWS GENETICS", normalize.JournalName(tables.Str("Nature Reviews: Genetics")))
	assert.Equal(t, "", normalize.JournalName(tables.Absent()))
	assert.Equal(t, "A B", normalize.JournalName(tables.Str("  a---b  ")))
}

func TestJournalNameIdempotent(t *testing.T) {
	once := normalize.JournalName(tables.Str("Journal of Biology!"))
	assert.Equal(t, once, normalize.JournalName(tables.Str(once)))
}

func TestNumber(t *testing.T) {
	got := normalize.Number(tables.Str("1,234"))
	f, ok := got.Float()
	assert.True(t, ok)
	assert.InDelta(t, 1.234, f, 1e-9)

	got = normalize.Number(tables.Str("567.89"))
	f, ok = got.Float()
	assert.True(t, ok)
	assert.InDelta(t, 567.89, f, 1e-9)

	assert.True(t, normalize.Number(tables.Str("abc")).IsAbsent())
	assert.True(t, normalize.Number(tables.Str("")).IsAbsent())
	assert.True(t, normalize.Number(tables.Absent()).IsAbsent())

	// Numbers pass through untouched.
	got = normalize.Number(tables.Num(3.5))
	f, ok = got.Float()
	assert.True(t, ok)
	assert.Equal(t, 3.5, f)
}
