package engine

import (
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/rhizome-lab/moss/internal/lang"
	"github.com/rhizome-lab/moss/internal/rules"
)

// patternRule resolves a composite pattern index back to its owning rule and
// to the index of the shared @match capture within the combined query.
type patternRule struct {
	rule         *rules.Rule
	matchCapture uint32
}

// combinedQuery is one grammar's composite query: every surviving rule's
// pattern text compiled together, so each file is parsed and traversed once
// no matter how many rules are active.
//
// patternToRule is a prefix-sum table: a rule that compiles to p standalone
// patterns occupies exactly p consecutive slots, in specific-then-global rule
// order. It is built once per grammar and read-only afterwards, so it is safe
// to share across concurrent per-file matching.
type combinedQuery struct {
	query         *sitter.Query
	patternToRule []patternRule
}

func (c *combinedQuery) Close() {
	if c != nil && c.query != nil {
		c.query.Close()
	}
}

// buildCombinedQuery merges the applicable rules for one grammar. specific
// and global preserve the caller's rule order. Returns nil when no rule
// survives compilation or when the composite itself fails to compile; the
// grammar's files are then skipped entirely.
func buildCombinedQuery(language lang.Language, tsLang *sitter.Language, specific, global []*rules.Rule, debug bool) *combinedQuery {
	type kept struct {
		rule     *rules.Rule
		patterns uint32
	}
	var survivors []kept
	var texts []string

	for _, r := range specific {
		if !r.AppliesTo(string(language)) {
			continue
		}
		q, err := sitter.NewQuery([]byte(r.Query), tsLang)
		if err != nil {
			// The author targeted this grammar, so a failure here is a
			// rule bug worth surfacing.
			slog.Warn("engine.query.drop", "rule", r.ID, "language", language, "err", err)
			continue
		}
		survivors = append(survivors, kept{r, q.PatternCount()})
		texts = append(texts, r.Query)
		q.Close()
	}

	for _, r := range global {
		q, err := sitter.NewQuery([]byte(r.Query), tsLang)
		if err != nil {
			// Global rules reference node kinds that do not exist in every
			// grammar; dropping per grammar is the expected path.
			if debug {
				slog.Debug("engine.query.global.drop", "rule", r.ID, "language", language, "err", err)
			}
			continue
		}
		survivors = append(survivors, kept{r, q.PatternCount()})
		texts = append(texts, r.Query)
		q.Close()
	}

	if len(survivors) == 0 {
		return nil
	}

	composite := strings.Join(texts, "\n\n")
	q, err := sitter.NewQuery([]byte(composite), tsLang)
	if err != nil {
		// Individually valid rules can still collide in combination, e.g.
		// conflicting capture declarations.
		slog.Error("engine.grammar.skip", "language", language, "err", err)
		return nil
	}

	matchCapture, ok := captureIndex(q, "match")
	if !ok {
		slog.Error("engine.grammar.skip", "language", language, "err", "combined query has no @match capture")
		q.Close()
		return nil
	}

	table := make([]patternRule, 0, q.PatternCount())
	for _, s := range survivors {
		for i := uint32(0); i < s.patterns; i++ {
			table = append(table, patternRule{rule: s.rule, matchCapture: matchCapture})
		}
	}
	if uint32(len(table)) != q.PatternCount() {
		slog.Error("engine.grammar.skip", "language", language,
			"err", "standalone pattern count does not cover the combined query",
			"standalone", len(table), "combined", q.PatternCount())
		q.Close()
		return nil
	}

	return &combinedQuery{query: q, patternToRule: table}
}

// captureIndex finds a capture by name within a compiled query.
func captureIndex(q *sitter.Query, name string) (uint32, bool) {
	for i := uint32(0); i < q.CaptureCount(); i++ {
		if q.CaptureNameForId(i) == name {
			return i, true
		}
	}
	return 0, false
}
