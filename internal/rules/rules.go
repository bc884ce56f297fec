// Package rules defines the rule model consumed by the engine. Rules are
// supplied by the caller (normally via ruleload) and are read-only for the
// duration of a run.
package rules

import (
	"strings"
)

// Severity classifies a rule violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Rank orders severities from hint (0) to error (3). Unknown severities rank
// below hint.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	case SeverityHint:
		return 0
	}
	return -1
}

// Requirement is one requires entry: Key is resolved through the
// SourceRegistry for the file under test, Expect may carry a comparison
// prefix (">=", "<=", "!"); no prefix means exact equality.
type Requirement struct {
	Key    string
	Expect string
}

// Satisfied reports whether an actual value meets the expectation. Ordered
// comparisons are plain string comparisons, which is only numerically
// meaningful for equal-width values; rule authors relying on ordering should
// zero-pad.
func (rq Requirement) Satisfied(actual string) bool {
	switch {
	case strings.HasPrefix(rq.Expect, ">="):
		return actual >= rq.Expect[2:]
	case strings.HasPrefix(rq.Expect, "<="):
		return actual <= rq.Expect[2:]
	case strings.HasPrefix(rq.Expect, "!"):
		return actual != rq.Expect[1:]
	}
	return actual == rq.Expect
}

// Rule is one structural pattern rule. Query is tree-sitter pattern source
// and must expose a top-level capture named "match".
type Rule struct {
	ID        string
	Query     string
	Languages []string // grammar names; empty means the rule is global
	Severity  Severity
	Message   string
	Fix       string   // optional fix template; $name tokens reference captures
	Allow     []string // path globs exempt from this rule
	Requires  []Requirement
}

// Global reports whether the rule applies to every grammar.
func (r *Rule) Global() bool {
	return len(r.Languages) == 0
}

// AppliesTo reports whether the rule targets the given grammar name.
// Global rules apply everywhere.
func (r *Rule) AppliesTo(language string) bool {
	if r.Global() {
		return true
	}
	for _, l := range r.Languages {
		if l == language {
			return true
		}
	}
	return false
}

// SourceContext identifies a file for requires evaluation.
type SourceContext struct {
	Path    string // absolute path
	RelPath string // root-relative path
	Root    string // project root
}

// SourceRegistry resolves per-file metadata keys (build edition, framework
// versions, ...) consulted by requires gating.
type SourceRegistry interface {
	Get(ctx SourceContext, key string) (string, bool)
}

// MapRegistry is a SourceRegistry backed by a static map; the context is
// ignored. A nil map resolves nothing.
type MapRegistry map[string]string

// Get implements SourceRegistry.
func (m MapRegistry) Get(_ SourceContext, key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
