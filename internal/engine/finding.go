package engine

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/rhizome-lab/moss/internal/rules"
)

// Finding is one accepted rule violation at a specific location. It is
// constructed only after every gate has passed and is never mutated
// afterwards; ApplyFixes edits files, not Findings.
type Finding struct {
	RuleID      string            `json:"rule_id"`
	Path        string            `json:"path"`          // absolute
	RelPath     string            `json:"rel_path"`      // root-relative, slash-separated
	StartLine   int               `json:"start_line"`    // 1-based
	StartCol    int               `json:"start_col"`     // 1-based
	EndLine     int               `json:"end_line"`
	EndCol      int               `json:"end_col"`
	StartByte   int               `json:"start_byte"`
	EndByte     int               `json:"end_byte"`
	Severity    rules.Severity    `json:"severity"`
	Message     string            `json:"message"`
	MatchedText string            `json:"matched_text"`  // first line of the matched node
	Fix         string            `json:"fix,omitempty"` // fix template copied from the rule
	Captures    map[string]string `json:"captures,omitempty"`
}

// Fixable reports whether the finding carries a fix template.
func (f *Finding) Fixable() bool {
	return f.Fix != ""
}

// Fingerprint identifies a finding across runs. It is keyed on rule, file and
// matched text rather than position, so it survives unrelated edits that
// shift lines.
func (f *Finding) Fingerprint() string {
	sum := xxh3.HashString(f.RuleID + "\x00" + f.RelPath + "\x00" + f.MatchedText)
	return fmt.Sprintf("%016x", sum)
}
