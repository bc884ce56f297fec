package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandFixTemplate(t *testing.T) {
	cases := []struct {
		template string
		captures map[string]string
		want     string
	}{
		{"use $name", map[string]string{"name": "foo"}, "use foo"},
		{"$call.expect(\"TODO\")", map[string]string{"call": "x"}, "x.expect(\"TODO\")"},
		// Absent captures are left verbatim, not blanked.
		{"use $missing", map[string]string{"name": "foo"}, "use $missing"},
		{"no tokens", map[string]string{"name": "foo"}, "no tokens"},
		{"$a$b", map[string]string{"a": "1", "b": "2"}, "12"},
		// Longest name first: $call must not be consumed by $c.
		{"$call + $c", map[string]string{"call": "x", "c": "y"}, "x + y"},
		{"", map[string]string{"a": "1"}, ""},
		{"use $name", nil, "use $name"},
	}
	for _, c := range cases {
		if got := ExpandFixTemplate(c.template, c.captures); got != c.want {
			t.Errorf("ExpandFixTemplate(%q, %v) = %q, want %q", c.template, c.captures, got, c.want)
		}
	}
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.rs")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyFixesOrderIndependent(t *testing.T) {
	content := strings.Repeat("a", 10) + strings.Repeat("A", 10) +
		strings.Repeat("b", 30) + strings.Repeat("B", 10) + "cc"
	a := Finding{StartByte: 10, EndByte: 20, Fix: "X"} // the A block
	b := Finding{StartByte: 50, EndByte: 60, Fix: "Y"} // the B block

	var results []string
	for _, order := range [][]Finding{{a, b}, {b, a}} {
		path := writeFixture(t, content)
		for i := range order {
			order[i].Path = path
		}
		n, err := ApplyFixes(order)
		if err != nil {
			t.Fatalf("ApplyFixes: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 file written, got %d", n)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		results = append(results, string(got))
	}

	want := strings.Repeat("a", 10) + "X" + strings.Repeat("b", 30) + "Y" + "cc"
	if results[0] != want {
		t.Errorf("fixed content = %q, want %q", results[0], want)
	}
	if results[0] != results[1] {
		t.Errorf("fix output depends on finding order: %q vs %q", results[0], results[1])
	}
}

func TestApplyFixesSkipsUnfixable(t *testing.T) {
	path := writeFixture(t, "unchanged")
	n, err := ApplyFixes([]Finding{{Path: path, StartByte: 0, EndByte: 2}})
	if err != nil {
		t.Fatalf("ApplyFixes: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 files written, got %d", n)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "unchanged" {
		t.Errorf("file without fixable findings was modified: %q", got)
	}
}

func TestApplyFixesStaleRange(t *testing.T) {
	path := writeFixture(t, "short")
	n, err := ApplyFixes([]Finding{{Path: path, StartByte: 100, EndByte: 110, Fix: "X"}})
	if err != nil {
		t.Fatalf("ApplyFixes: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected the file to still be written once, got %d", n)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "short" {
		t.Errorf("stale range must be skipped, file became %q", got)
	}
}

func TestApplyFixesMissingFile(t *testing.T) {
	_, err := ApplyFixes([]Finding{{Path: filepath.Join(t.TempDir(), "nope.rs"), StartByte: 0, EndByte: 1, Fix: "X"}})
	if err == nil {
		t.Fatal("expected hard error for unreadable file")
	}
}

func TestFindingFingerprint(t *testing.T) {
	a := Finding{RuleID: "r", RelPath: "a.go", MatchedText: "x.unwrap()"}
	b := Finding{RuleID: "r", RelPath: "a.go", MatchedText: "x.unwrap()", StartLine: 99}
	c := Finding{RuleID: "r", RelPath: "b.go", MatchedText: "x.unwrap()"}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint must ignore position")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprint must distinguish files")
	}
	if len(a.Fingerprint()) != 16 {
		t.Errorf("fingerprint should be 16 hex chars, got %q", a.Fingerprint())
	}
}
