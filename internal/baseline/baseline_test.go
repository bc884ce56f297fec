package baseline

import (
	"path/filepath"
	"testing"

	"github.com/rhizome-lab/moss/internal/engine"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "baseline.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpdateAndFilter(t *testing.T) {
	s := openTemp(t)

	known := engine.Finding{RuleID: "r1", RelPath: "a.go", MatchedText: "x.unwrap()"}
	fresh := engine.Finding{RuleID: "r1", RelPath: "b.go", MatchedText: "y.unwrap()"}

	if err := s.Update([]engine.Finding{known}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Filter([]engine.Finding{known, fresh})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(got) != 1 || got[0].RelPath != "b.go" {
		t.Fatalf("Filter kept %+v, want only b.go", got)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	s := openTemp(t)
	f := engine.Finding{RuleID: "r1", RelPath: "a.go", MatchedText: "x"}

	for i := 0; i < 3; i++ {
		if err := s.Update([]engine.Finding{f}); err != nil {
			t.Fatalf("Update #%d: %v", i, err)
		}
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestHas(t *testing.T) {
	s := openTemp(t)
	f := engine.Finding{RuleID: "r1", RelPath: "a.go", MatchedText: "x"}

	ok, err := s.Has(f.Fingerprint())
	if err != nil || ok {
		t.Fatalf("Has before update = %v, %v", ok, err)
	}
	if err := s.Update([]engine.Finding{f}); err != nil {
		t.Fatal(err)
	}
	ok, err = s.Has(f.Fingerprint())
	if err != nil || !ok {
		t.Fatalf("Has after update = %v, %v", ok, err)
	}
}
