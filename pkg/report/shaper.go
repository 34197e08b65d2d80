package report

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// Shaper turns the reconciled table into the public output schema.
type Shaper struct {
	log   *zerolog.Logger
	years Years
}

// ShaperOption configures a Shaper.
type ShaperOption func(*Shaper)

// WithLogger sets the shaper's logger.
func WithLogger(log *zerolog.Logger) ShaperOption {
	return func(s *Shaper) {
		s.log = log
	}
}

// NewShaper creates a Shaper labeling metrics with the given reporting
// years.
func NewShaper(years Years, opts ...ShaperOption) *Shaper {
	s := &Shaper{
		log:   logging.Default(),
		years: years,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shape renames metric fields to their year-stamped labels, reformats
// category lists, applies the journal-website fallback, enriches with
// agreement metadata, deduplicates on (journal name, identifier list),
// and projects the final column order.
func (s *Shaper) Shape(merged, caplink *tables.Table) *tables.Table {
	out := merged.Rename(metricLabels(s.years))

	if cat := categoriesLabel(s.years); out.HasColumn(cat) {
		out.Apply(cat, categoriesToLines)
	}

	s.applyWebsiteFallback(out)
	out = s.enrichAgreements(out, caplink)

	before := out.Len()
	out = out.DropDuplicatesBy(constants.JournalNameColumn, constants.IdentifierListColumn)
	s.log.Info().Int("before", before).Int("after", out.Len()).Msg("Deduplicated output")

	out = out.Rename(map[string]string{
		constants.IdentifierListColumn: IdentifierListLabel,
		"Link":                         AgreementLinkLabel,
	})
	return out.Select(FinalColumns(s.years)...)
}

// categoriesToLines reformats a "; "-separated category list as
// newline-separated. The sentinel passes through; an absent value
// becomes the sentinel.
func categoriesToLines(v tables.Value) tables.Value {
	if v.IsAbsent() || v.String() == constants.Sentinel {
		return tables.Str(constants.Sentinel)
	}
	return tables.Str(strings.ReplaceAll(v.String(), "; ", "\n"))
}

// applyWebsiteFallback replaces a missing, blank, or sentinel journal
// website with a search query URL built from the journal name. The URL
// is a pure function of the name — reproducible, no network involved.
func (s *Shaper) applyWebsiteFallback(t *tables.Table) {
	if !t.HasColumn("Journal Website") {
		t.EnsureColumns("Journal Website")
	}
	for _, r := range t.Rows {
		site := r.Get("Journal Website")
		if site.IsBlank() || strings.ToUpper(strings.TrimSpace(site.String())) == constants.Sentinel {
			name := r.Get(constants.JournalNameColumn).String()
			r.Set("Journal Website", tables.Str(SearchURL(name)))
		}
	}
}

// SearchURL builds the deterministic fallback website for a journal.
func SearchURL(journalName string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape("Journal "+journalName)
}

// enrichAgreements left-joins agreement metadata by the normalized
// agreement key. The key is recomputed from the Agreement column with
// the same normalization the journal list uses; existing key columns
// are not trusted. Missing or malformed metadata leaves the output
// unchanged.
func (s *Shaper) enrichAgreements(out, caplink *tables.Table) *tables.Table {
	if caplink.Empty() || !caplink.HasColumn(constants.AgreementColumn) {
		s.log.Info().Msg("Cap and Link data missing or malformed, enrichment skipped")
		return out
	}

	meta := caplink.Clone()
	meta.EnsureColumns(constants.AgreementKeyColumn)
	for _, r := range meta.Rows {
		r.Set(constants.AgreementKeyColumn, tables.Str(normalize.AgreementKey(r.Get(constants.AgreementColumn))))
	}
	meta = meta.Select(append([]string{constants.AgreementKeyColumn}, capLinkFields...)...).DropDuplicates()

	if !out.HasColumn(constants.AgreementKeyColumn) {
		s.log.Info().Str("column", constants.AgreementKeyColumn).Msg("Agreement key missing in output, enrichment skipped")
		return out
	}
	return out.LeftJoin(meta, constants.AgreementKeyColumn, "_CAP")
}
