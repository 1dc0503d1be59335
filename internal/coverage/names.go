// Package coverage decides which reported classes a project's coverage
// directives put in scope and grades their measured coverage.
package coverage

import (
	"regexp"
	"strings"
)

// anonSuffix matches one or more trailing "$<digits>" segments, the names
// the compiler gives anonymous inner classes.
var anonSuffix = regexp.MustCompile(`(\$[0-9]+)+$`)

// NormalizeClassName turns a tool-reported name such as "a/b/C$D" into the
// dotted form "a.b.C.D" used by coverage directives.
func NormalizeClassName(raw string) string {
	return strings.NewReplacer("/", ".", "$", ".").Replace(raw)
}

// IsAnonymous reports whether raw (slash/dollar form) names an anonymous
// inner class, including anonymous classes nested in other classes.
func IsAnonymous(raw string) bool {
	return anonSuffix.MatchString(raw)
}

// AnonymousParent returns the named class that an anonymous class belongs
// to, stripping every trailing "$<digits>" segment. Names that are not
// anonymous are returned unchanged.
func AnonymousParent(raw string) string {
	return anonSuffix.ReplaceAllString(raw, "")
}
