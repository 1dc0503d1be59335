package coverage

import (
	"cmp"
	"slices"
	"strings"

	"github.com/dshills/autograde/internal/policy"
)

// matches reports whether name is the directive's target or nested in it.
func matches(name string, d policy.Directive) bool {
	return name == d.Name || strings.HasPrefix(name, d.Name+".")
}

// scopeRank orders package directives before class directives of equal
// length.
func scopeRank(s policy.Scope) int {
	if s == policy.ScopePackage {
		return 0
	}
	return 1
}

// Included reports whether the dotted class name is in scope. Matching
// directives are applied from least to most specific and the last one
// wins; a name no directive matches is out of scope.
func Included(directives []policy.Directive, name string) bool {
	var hits []policy.Directive
	for _, d := range directives {
		if matches(name, d) {
			hits = append(hits, d)
		}
	}
	slices.SortStableFunc(hits, func(a, b policy.Directive) int {
		return cmp.Or(
			cmp.Compare(len(a.Name), len(b.Name)),
			cmp.Compare(scopeRank(a.Scope), scopeRank(b.Scope)),
			cmp.Compare(a.Name, b.Name),
		)
	})
	verdict := false
	for _, d := range hits {
		verdict = !d.Exclude
	}
	return verdict
}

// Resolve returns the subset of dotted class names that are in scope, in
// input order.
func Resolve(directives []policy.Directive, names []string) []string {
	var out []string
	for _, n := range names {
		if Included(directives, n) {
			out = append(out, n)
		}
	}
	return out
}
