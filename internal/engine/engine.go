// Package engine is the rule-execution core: it compiles every applicable
// rule into one combined query per grammar, runs a single parse-and-traverse
// per file, gates each raw match (allow-list, requires, predicates, inline
// suppression) and emits Findings. Fix application lives in fix.go.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/gobwas/glob"
	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/rhizome-lab/moss/internal/discover"
	"github.com/rhizome-lab/moss/internal/parser"
	"github.com/rhizome-lab/moss/internal/rules"
)

// Options configures a run.
type Options struct {
	FilterRuleID string // restrict the run to a single rule id; empty runs all
	Workers      int    // per-file matching concurrency; <=0 means NumCPU
	DebugQueries bool   // log global rules dropped by expected compile failures
}

func (o Options) workers(files int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > files {
		w = files
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Run executes every active rule against the files under root and returns
// the accepted findings in file-traversal order. Rules are read-only for the
// run. Local failures (unreadable files, unparsable content, uncompilable
// patterns) skip that unit of work and never abort the run.
func Run(ctx context.Context, ruleset []rules.Rule, root string, registry rules.SourceRegistry, opts Options) ([]Finding, error) {
	active := make([]rules.Rule, 0, len(ruleset))
	for _, r := range ruleset {
		if opts.FilterRuleID != "" && r.ID != opts.FilterRuleID {
			continue
		}
		active = append(active, r)
	}
	if len(active) == 0 {
		return nil, nil
	}

	// Partition once, preserving the caller's order within each class. The
	// combined query always lays out language-specific rules before global
	// ones.
	var specific, global []*rules.Rule
	for i := range active {
		if active[i].Global() {
			global = append(global, &active[i])
		} else {
			specific = append(specific, &active[i])
		}
	}

	files, err := discover.Discover(ctx, root, nil)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	groups, languages := discover.GroupByLanguage(files)
	allowGlobs := compileAllowGlobs(active)

	var findings []Finding
	for _, l := range languages {
		tsLang, err := parser.GetLanguage(l)
		if err != nil {
			slog.Warn("engine.language.skip", "language", l, "err", err)
			continue
		}

		cq := buildCombinedQuery(l, tsLang, specific, global, opts.DebugQueries)
		if cq == nil {
			// No rule survived for this grammar; its files are never parsed.
			continue
		}

		group := groups[l]
		results := make([][]Finding, len(group))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.workers(len(group)))
		for i, fi := range group {
			i, fi := i, fi
			g.Go(func() error {
				results[i] = matchFile(gctx, cq, fi, root, registry, allowGlobs)
				return gctx.Err()
			})
		}
		waitErr := g.Wait()
		cq.Close()
		if waitErr != nil {
			return findings, waitErr
		}

		// Matching is concurrent but results land by file index, so output
		// order equals the single-threaded traversal order.
		for _, r := range results {
			findings = append(findings, r...)
		}
	}

	slog.Info("engine.run.done", "files", len(files), "rules", len(active), "findings", len(findings))
	return findings, nil
}

// compileAllowGlobs compiles every rule's allow patterns once per run.
// Globs use / as separator, so "vendor/**" covers the whole subtree.
func compileAllowGlobs(active []rules.Rule) map[string][]glob.Glob {
	out := make(map[string][]glob.Glob)
	for _, r := range active {
		for _, pattern := range r.Allow {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				slog.Warn("engine.allow.drop", "rule", r.ID, "pattern", pattern, "err", err)
				continue
			}
			out[r.ID] = append(out[r.ID], g)
		}
	}
	return out
}

// matchFile parses one file, runs the grammar's combined query once, and
// gates every raw match. Gates run in a fixed order and short-circuit on the
// first rejection: allow-list, requires, predicates, suppression.
func matchFile(ctx context.Context, cq *combinedQuery, fi discover.FileInfo, root string, registry rules.SourceRegistry, allowGlobs map[string][]glob.Glob) []Finding {
	source, err := os.ReadFile(fi.Path)
	if err != nil {
		slog.Warn("engine.file.skip", "path", fi.RelPath, "err", err)
		return nil
	}

	tree, err := parser.Parse(ctx, fi.Language, source)
	if err != nil {
		slog.Warn("engine.parse.skip", "path", fi.RelPath, "err", err)
		return nil
	}
	defer tree.Close()

	lines := strings.Split(string(source), "\n")
	srcCtx := rules.SourceContext{Path: fi.Path, RelPath: fi.RelPath, Root: root}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(cq.query, tree.RootNode())

	var findings []Finding
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		if int(m.PatternIndex) >= len(cq.patternToRule) {
			continue
		}
		pr := cq.patternToRule[m.PatternIndex]
		r := pr.rule

		if pathAllowed(allowGlobs[r.ID], fi.RelPath) {
			continue
		}
		if !requirementsMet(r, srcCtx, registry) {
			continue
		}
		if !EvaluatePredicates(cq.query, m, source) {
			continue
		}

		node := captureNode(m, pr.matchCapture)
		if node == nil {
			continue
		}
		startLine := int(node.StartPoint().Row) + 1
		if suppressed(lines, startLine, r.ID) {
			continue
		}

		findings = append(findings, newFinding(r, fi, node, m, cq.query, source))
	}
	return findings
}

// pathAllowed reports whether any of the rule's allow globs exempts the file.
func pathAllowed(globs []glob.Glob, relPath string) bool {
	for _, g := range globs {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// requirementsMet resolves every requires key through the registry and ANDs
// the comparisons. A missing key rejects.
func requirementsMet(r *rules.Rule, srcCtx rules.SourceContext, registry rules.SourceRegistry) bool {
	if len(r.Requires) == 0 {
		return true
	}
	if registry == nil {
		return false
	}
	for _, rq := range r.Requires {
		actual, ok := registry.Get(srcCtx, rq.Key)
		if !ok {
			return false
		}
		if !rq.Satisfied(actual) {
			return false
		}
	}
	return true
}

// captureNode returns the node bound to the shared @match capture.
func captureNode(m *sitter.QueryMatch, captureIndex uint32) *sitter.Node {
	for _, c := range m.Captures {
		if c.Index == captureIndex {
			return c.Node
		}
	}
	return nil
}

// newFinding snapshots the match into an immutable Finding.
func newFinding(r *rules.Rule, fi discover.FileInfo, node *sitter.Node, m *sitter.QueryMatch, q *sitter.Query, source []byte) Finding {
	captures := make(map[string]string, len(m.Captures))
	for _, c := range m.Captures {
		captures[q.CaptureNameForId(c.Index)] = c.Node.Content(source)
	}

	text := node.Content(source)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	start, end := node.StartPoint(), node.EndPoint()
	return Finding{
		RuleID:      r.ID,
		Path:        fi.Path,
		RelPath:     fi.RelPath,
		StartLine:   int(start.Row) + 1,
		StartCol:    int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndCol:      int(end.Column) + 1,
		StartByte:   int(node.StartByte()),
		EndByte:     int(node.EndByte()),
		Severity:    r.Severity,
		Message:     r.Message,
		MatchedText: text,
		Fix:         r.Fix,
		Captures:    captures,
	}
}
