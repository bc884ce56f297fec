package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rhizome-lab/moss/internal/engine"
	"github.com/rhizome-lab/moss/internal/rules"
)

var severityStyles = map[rules.Severity]lipgloss.Style{
	rules.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	rules.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	rules.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	rules.SeverityHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

var locationStyle = lipgloss.NewStyle().Bold(true)

func renderSeverity(s rules.Severity) string {
	if style, ok := severityStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// printFindings writes one finding per block: location, severity, rule id,
// message, then the matched line.
func printFindings(w io.Writer, findings []engine.Finding) {
	for _, f := range findings {
		loc := locationStyle.Render(fmt.Sprintf("%s:%d:%d", f.RelPath, f.StartLine, f.StartCol))
		fmt.Fprintf(w, "%s %s %s: %s\n", loc, renderSeverity(f.Severity), f.RuleID, f.Message)
		fmt.Fprintf(w, "    %s\n", f.MatchedText)
	}
	if len(findings) == 0 {
		fmt.Fprintln(w, "no findings")
		return
	}
	fmt.Fprintf(w, "%d finding(s)\n", len(findings))
}

func printJSON(w io.Writer, findings []engine.Finding) error {
	if findings == nil {
		findings = []engine.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}
