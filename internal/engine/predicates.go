package engine

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// predicateOp enumerates the closed set of supported predicate operators.
// This is deliberately not a plugin mechanism: the set is fixed and unknown
// operators are no-ops, never errors.
type predicateOp int

const (
	opUnknown predicateOp = iota
	opEq
	opNotEq
	opMatch
	opNotMatch
	opAnyOf
)

func parsePredicateOp(name string) predicateOp {
	switch name {
	case "eq?":
		return opEq
	case "not-eq?":
		return opNotEq
	case "match?":
		return opMatch
	case "not-match?":
		return opNotMatch
	case "any-of?":
		return opAnyOf
	}
	return opUnknown
}

// EvaluatePredicates applies the predicates declared on the match's
// originating pattern. Evaluation is a logical AND; the first failing
// predicate stops evaluation. Unknown operators and invalid match? regexes
// never reject.
func EvaluatePredicates(q *sitter.Query, m *sitter.QueryMatch, source []byte) bool {
	for _, steps := range q.PredicatesForPattern(uint32(m.PatternIndex)) {
		if len(steps) == 0 || steps[0].Type != sitter.QueryPredicateStepTypeString {
			continue
		}
		op := parsePredicateOp(q.StringValueForId(steps[0].ValueId))
		if op == opUnknown {
			continue
		}

		args := steps[1:]
		if n := len(args); n > 0 && args[n-1].Type == sitter.QueryPredicateStepTypeDone {
			args = args[:n-1]
		}

		if !evalPredicate(op, args, q, m, source) {
			return false
		}
	}
	return true
}

// resolveArg produces the text of a predicate argument: the matched node's
// text for a capture, the literal for a string. A capture absent from this
// match resolves to the empty string.
func resolveArg(step sitter.QueryPredicateStep, q *sitter.Query, m *sitter.QueryMatch, source []byte) string {
	switch step.Type {
	case sitter.QueryPredicateStepTypeCapture:
		for _, c := range m.Captures {
			if c.Index == step.ValueId {
				return c.Node.Content(source)
			}
		}
		return ""
	case sitter.QueryPredicateStepTypeString:
		return q.StringValueForId(step.ValueId)
	}
	return ""
}

func evalPredicate(op predicateOp, args []sitter.QueryPredicateStep, q *sitter.Query, m *sitter.QueryMatch, source []byte) bool {
	switch op {
	case opEq, opNotEq:
		if len(args) != 2 {
			return true
		}
		a := resolveArg(args[0], q, m, source)
		b := resolveArg(args[1], q, m, source)
		if op == opEq {
			return a == b
		}
		return a != b

	case opMatch, opNotMatch:
		if len(args) != 2 {
			return true
		}
		text := resolveArg(args[0], q, m, source)
		re, err := regexp.Compile(resolveArg(args[1], q, m, source))
		if err != nil {
			// Invalid regex: the predicate is ignored, not failed.
			return true
		}
		if op == opMatch {
			return re.MatchString(text)
		}
		return !re.MatchString(text)

	case opAnyOf:
		if len(args) < 2 {
			return true
		}
		text := resolveArg(args[0], q, m, source)
		for _, lit := range args[1:] {
			if text == resolveArg(lit, q, m, source) {
				return true
			}
		}
		return false
	}
	return true
}
