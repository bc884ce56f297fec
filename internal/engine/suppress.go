package engine

import "strings"

// allowMarker is the literal that introduces an inline suppression comment,
// e.g. "// moss-allow: no-unwrap - checked above".
const allowMarker = "moss-allow:"

// lineAllows reports whether line carries an allow marker for exactly ruleID.
// After the marker and optional whitespace the id must terminate at end of
// line, whitespace, or "*/", so a marker for a longer id never satisfies a
// lookup for one of its prefixes. A free-text justification follows the id
// after whitespace ("moss-allow: id - reason").
func lineAllows(line, ruleID string) bool {
	idx := strings.Index(line, allowMarker)
	if idx < 0 {
		return false
	}
	rest := strings.TrimLeft(line[idx+len(allowMarker):], " \t")
	if !strings.HasPrefix(rest, ruleID) {
		return false
	}
	tail := rest[len(ruleID):]
	if tail == "" {
		return true
	}
	if tail[0] == ' ' || tail[0] == '\t' {
		return true
	}
	return strings.HasPrefix(tail, "*/")
}

// suppressed reports whether a finding starting at startLine (1-based) is
// suppressed: the marker counts on the finding's own line (trailing comment)
// or on the line directly above (standalone comment).
func suppressed(lines []string, startLine int, ruleID string) bool {
	if startLine >= 1 && startLine <= len(lines) && lineAllows(lines[startLine-1], ruleID) {
		return true
	}
	if startLine >= 2 && lineAllows(lines[startLine-2], ruleID) {
		return true
	}
	return false
}
