package ruleload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhizome-lab/moss/internal/rules"
)

const sampleRules = `
rules:
  - id: no-unwrap
    languages: [rust]
    severity: warning
    message: avoid unwrap
    query: |
      ((call_expression
        function: (field_expression field: (field_identifier) @method))
       @match
       (#eq? @method "unwrap"))
    fix: "$call.expect(\"TODO\")"
    allow: ["vendor/**"]
    requires:
      - key: min-edition
        expect: ">=2021"
  - id: no-print
    message: no print calls
    query: |
      ((call function: (identifier) @fn) @match (#eq? @fn "print"))
`

func TestParse(t *testing.T) {
	rs, err := Parse([]byte(sampleRules))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rs))
	}

	r := rs[0]
	if r.ID != "no-unwrap" || r.Severity != rules.SeverityWarning {
		t.Errorf("unexpected rule: %+v", r)
	}
	if r.Global() {
		t.Error("no-unwrap should be language-specific")
	}
	if len(r.Allow) != 1 || r.Allow[0] != "vendor/**" {
		t.Errorf("allow not loaded: %v", r.Allow)
	}
	if len(r.Requires) != 1 || r.Requires[0].Expect != ">=2021" {
		t.Errorf("requires not loaded: %v", r.Requires)
	}

	if !rs[1].Global() {
		t.Error("no-print should be global")
	}
	if rs[1].Severity != rules.SeverityWarning {
		t.Errorf("missing severity should default to warning, got %s", rs[1].Severity)
	}
}

func TestParseRejectsMissingMatchCapture(t *testing.T) {
	_, err := Parse([]byte("rules:\n  - id: bad\n    query: \"(identifier) @name\"\n"))
	if err == nil || !strings.Contains(err.Error(), "@match") {
		t.Fatalf("expected @match validation error, got %v", err)
	}
}

func TestParseRejectsUnknownSeverity(t *testing.T) {
	_, err := Parse([]byte("rules:\n  - id: bad\n    severity: fatal\n    query: \"(identifier) @match\"\n"))
	if err == nil || !strings.Contains(err.Error(), "severity") {
		t.Fatalf("expected severity error, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	a := "rules:\n  - id: rule-a\n    query: \"(identifier) @match\"\n"
	b := "rules:\n  - id: rule-b\n    query: \"(identifier) @match\"\n"
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(b), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.yml"), []byte(a), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(rs) != 2 || rs[0].ID != "rule-a" || rs[1].ID != "rule-b" {
		t.Fatalf("expected rule-a then rule-b, got %+v", rs)
	}
}

func TestLoadDirRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	r := "rules:\n  - id: dup\n    query: \"(identifier) @match\"\n"
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(r), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := LoadDir(dir); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
