package engine

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// ExpandFixTemplate renders a fix template by substituting every $name token
// with the corresponding capture value. Substitution is plain string
// replacement, longest capture name first; a token with no capture is left
// verbatim. A capture value that itself contains a $name token can be
// re-substituted by a later replacement; that limitation is accepted.
func ExpandFixTemplate(template string, captures map[string]string) string {
	if len(captures) == 0 || !strings.Contains(template, "$") {
		return template
	}

	names := make([]string, 0, len(captures))
	for name := range captures {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	out := template
	for _, name := range names {
		out = strings.ReplaceAll(out, "$"+name, captures[name])
	}
	return out
}

// ApplyFixes rewrites the files behind every fixable finding and returns the
// number of distinct files written. Within a file fixes are applied in
// descending start-offset order, so earlier ranges are never shifted by a
// later replacement and no offset remapping is needed. Each file is written
// once, after all of its fixes.
//
// An I/O failure is returned as a hard error; files written by earlier
// iterations stay modified.
func ApplyFixes(findings []Finding) (int, error) {
	byFile := make(map[string][]Finding)
	var order []string
	for _, f := range findings {
		if !f.Fixable() {
			continue
		}
		if _, ok := byFile[f.Path]; !ok {
			order = append(order, f.Path)
		}
		byFile[f.Path] = append(byFile[f.Path], f)
	}

	written := 0
	for _, path := range order {
		group := byFile[path]
		sort.Slice(group, func(i, j int) bool {
			return group[i].StartByte > group[j].StartByte
		})

		content, err := os.ReadFile(path)
		if err != nil {
			return written, fmt.Errorf("read %s: %w", path, err)
		}

		mode := fs.FileMode(0o644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode()
		}

		for _, f := range group {
			start, end := f.StartByte, f.EndByte
			if start < 0 || end > len(content) || start > end {
				// Stale finding against a file that changed since the run.
				slog.Warn("fix.range.skip", "path", f.RelPath, "rule", f.RuleID,
					"start", start, "end", end, "size", len(content))
				continue
			}
			rendered := ExpandFixTemplate(f.Fix, f.Captures)

			buf := make([]byte, 0, len(content)-(end-start)+len(rendered))
			buf = append(buf, content[:start]...)
			buf = append(buf, rendered...)
			buf = append(buf, content[end:]...)
			content = buf
		}

		if err := os.WriteFile(path, content, mode); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}
