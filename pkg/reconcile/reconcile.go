// Package reconcile implements the record-linkage and
// metric-reconciliation engine: it joins the base journal list against
// each metrics source on the normalized identifier, recovers the full
// identifier set per journal, and resolves conflicting duplicate rows
// into one record per (journal name, identifier) pair using declared
// per-field resolution strategies.
package reconcile

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/logging"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/normalize"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// Join suffixes disambiguate columns the metrics sources share with the
// base list (Source, most notably).
const (
	suffixSCImago   = "_SC"
	suffixJCR       = "_JCR"
	suffixCiteScore = "_CS"
)

// defaultPolicies declares, in output column order, every field the
// engine reconciles across duplicate rows and the strategy it uses.
func defaultPolicies() []FieldPolicy {
	fields := []string{
		"5-year Impact Factor",
		"Impact Factor",
		"SJR",
		"H index",
		"SNIP",
		"CiteScore",
		"SJR Best Quartile",
		"Categories",
		"Journal Website",
		"Field of Research",
		"Publisher Name",
		constants.AgreementColumn,
		constants.AgreementKeyColumn,
	}
	policies := make([]FieldPolicy, len(fields))
	for i, f := range fields {
		policies[i] = FieldPolicy{Field: f, Resolve: FirstNonBlank}
	}
	return policies
}

// Engine merges the base journal list with the metrics sources.
type Engine struct {
	log      *zerolog.Logger
	policies []FieldPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log *zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithPolicies replaces the default per-field resolution policies.
func WithPolicies(policies []FieldPolicy) Option {
	return func(e *Engine) {
		e.policies = policies
	}
}

// New creates an Engine with first-non-blank resolution for every
// reconcilable field.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      logging.Default(),
		policies: defaultPolicies(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Merge left-joins the base journal table against the three metrics
// tables on the normalized identifier, groups the fanned-out rows by
// (journal name, identifier), resolves each declared field, and
// re-attaches the per-journal identifier list recovered via the clean
// journal name. The result carries one row per (journal name,
// identifier) pair with internal field names; output labeling is the
// shaper's job.
func (e *Engine) Merge(base, scimago, jcr, citescore *tables.Table) *tables.Table {
	if base.Empty() {
		return tables.New()
	}

	work := base.Clone()
	work.EnsureColumns(constants.CleanNameColumn)
	for _, r := range work.Rows {
		r.Set(constants.CleanNameColumn, tables.Str(normalize.JournalName(r.Get(constants.JournalNameColumn))))
	}

	merged := work.
		LeftJoin(scimago, constants.IdentifierColumn, suffixSCImago).
		LeftJoin(jcr, constants.IdentifierColumn, suffixJCR).
		LeftJoin(citescore, constants.IdentifierColumn, suffixCiteScore)
	e.log.Debug().Int("rows", merged.Len()).Msg("Joined metrics sources")

	identifierLists := e.identifierLists(merged)
	out := e.resolveGroups(merged)

	out.EnsureColumns(constants.CleanNameColumn, constants.IdentifierListColumn)
	for _, r := range out.Rows {
		clean := normalize.JournalName(r.Get(constants.JournalNameColumn))
		r.Set(constants.CleanNameColumn, tables.Str(clean))
		if list, ok := identifierLists[clean]; ok {
			r.Set(constants.IdentifierListColumn, tables.Str(list))
		}
		// Recomputation from the Agreement column is authoritative;
		// pre-existing Agreement Key values are never trusted over it.
		r.Set(constants.AgreementKeyColumn, tables.Str(normalize.AgreementKey(r.Get(constants.AgreementColumn))))
	}
	return out
}

// identifierLists recovers, per clean journal name, the sorted set of
// identifiers lost to join fan-out, concatenated with ", ".
func (e *Engine) identifierLists(merged *tables.Table) map[string]string {
	concat := SortedSetConcat(", ")
	grouped := make(map[string][]tables.Value)
	for _, r := range merged.Rows {
		clean := r.Get(constants.CleanNameColumn).String()
		grouped[clean] = append(grouped[clean], r.Get(constants.IdentifierColumn))
	}
	out := make(map[string]string, len(grouped))
	for clean, values := range grouped {
		out[clean] = concat(values).String()
	}
	return out
}

// resolveGroups groups rows by (journal name, identifier) and applies
// each field policy over the group's values in original row order.
// Groups are emitted in key order so output is reproducible; an absent
// identifier groups under the empty key rather than being dropped.
func (e *Engine) resolveGroups(merged *tables.Table) *tables.Table {
	type group struct {
		name, id tables.Value
		rows     []tables.Row
	}
	groups := make(map[string]*group)
	var ordered []*group
	for _, r := range merged.Rows {
		name := r.Get(constants.JournalNameColumn)
		id := r.Get(constants.IdentifierColumn)
		key := name.String() + "\x1f" + id.String()
		g, ok := groups[key]
		if !ok {
			g = &group{name: name, id: id}
			groups[key] = g
			ordered = append(ordered, g)
		}
		g.rows = append(g.rows, r)
	}
	// Emit groups in key order for reproducible output. Within one
	// journal name, absent-identifier groups sort last so the later
	// dedup on (name, identifier list) keeps the informative row.
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.name.String() != b.name.String() {
			return a.name.String() < b.name.String()
		}
		if a.id.IsAbsent() != b.id.IsAbsent() {
			return b.id.IsAbsent()
		}
		return a.id.String() < b.id.String()
	})

	columns := []string{constants.JournalNameColumn, constants.IdentifierColumn}
	for _, p := range e.policies {
		columns = append(columns, p.Field)
	}
	out := tables.New(columns...)
	for _, g := range ordered {
		row := make(tables.Row, len(columns))
		row.Set(constants.JournalNameColumn, g.name)
		if !g.id.IsAbsent() {
			row.Set(constants.IdentifierColumn, g.id)
		}
		values := make([]tables.Value, len(g.rows))
		for _, p := range e.policies {
			for i, gr := range g.rows {
				values[i] = gr.Get(p.Field)
			}
			row.Set(p.Field, p.Resolve(values))
		}
		out.AddRow(row)
	}
	e.log.Debug().Int("groups", out.Len()).Msg("Resolved duplicate rows")
	return out
}
