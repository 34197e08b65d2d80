package reconcile

import (
	"sort"
	"strings"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// Resolver resolves the values a group of duplicate rows carries for one
// field into a single value. Resolvers are named, testable strategies;
// the engine applies one per declared field rather than inlining policy
// into the grouping loop.
type Resolver func(values []tables.Value) tables.Value

// FieldPolicy binds a field name to its resolution strategy.
type FieldPolicy struct {
	Field   string
	Resolve Resolver
}

// FirstNonBlank returns the first value in original order that is
// neither absent nor an empty/whitespace string. When no value
// qualifies it returns the "N/A" sentinel, so a resolved field is never
// silently absent.
func FirstNonBlank(values []tables.Value) tables.Value {
	for _, v := range values {
		if !v.IsBlank() {
			return v
		}
	}
	return tables.Str(constants.Sentinel)
}

// SortedSetConcat returns a resolver that collects the distinct,
// non-blank, non-placeholder values of a group, sorts them
// lexicographically and joins them with sep. An empty set resolves to
// the empty string.
func SortedSetConcat(sep string) Resolver {
	return func(values []tables.Value) tables.Value {
		set := make(map[string]struct{})
		for _, v := range values {
			if v.IsBlank() {
				continue
			}
			s := strings.TrimSpace(v.String())
			if s == "" || strings.ToUpper(s) == "NONE" {
				continue
			}
			set[s] = struct{}{}
		}
		out := make([]string, 0, len(set))
		for s := range set {
			out = append(out, s)
		}
		sort.Strings(out)
		return tables.Str(strings.Join(out, sep))
	}
}
