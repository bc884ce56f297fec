// Package ruleload reads rule definition files. The engine itself never
// touches YAML; it consumes the []rules.Rule this package produces.
//
// A rule file looks like:
//
//	rules:
//	  - id: no-unwrap
//	    languages: [rust]
//	    severity: warning
//	    message: avoid unwrap in library code
//	    query: |
//	      ((call_expression
//	        function: (field_expression field: (field_identifier) @method))
//	       @match
//	       (#eq? @method "unwrap"))
//	    fix: "$call.expect(\"TODO\")"
//	    allow: ["vendor/**"]
//	    requires:
//	      - key: min-edition
//	        expect: ">=2021"
package ruleload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rhizome-lab/moss/internal/rules"
)

type ruleFile struct {
	Rules []ruleYAML `yaml:"rules"`
}

type ruleYAML struct {
	ID        string        `yaml:"id"`
	Query     string        `yaml:"query"`
	Languages []string      `yaml:"languages"`
	Severity  string        `yaml:"severity"`
	Message   string        `yaml:"message"`
	Fix       string        `yaml:"fix"`
	Allow     []string      `yaml:"allow"`
	Requires  []requireYAML `yaml:"requires"`
}

type requireYAML struct {
	Key    string `yaml:"key"`
	Expect string `yaml:"expect"`
}

// Parse decodes one rule file.
func Parse(data []byte) ([]rules.Rule, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	out := make([]rules.Rule, 0, len(f.Rules))
	for i, ry := range f.Rules {
		if ry.ID == "" {
			return nil, fmt.Errorf("rule %d: missing id", i)
		}
		if strings.TrimSpace(ry.Query) == "" {
			return nil, fmt.Errorf("rule %s: missing query", ry.ID)
		}
		if !strings.Contains(ry.Query, "@match") {
			return nil, fmt.Errorf("rule %s: query has no @match capture", ry.ID)
		}
		sev := rules.Severity(ry.Severity)
		if ry.Severity == "" {
			sev = rules.SeverityWarning
		} else if sev.Rank() < 0 {
			return nil, fmt.Errorf("rule %s: unknown severity %q", ry.ID, ry.Severity)
		}

		reqs := make([]rules.Requirement, 0, len(ry.Requires))
		for _, rq := range ry.Requires {
			if rq.Key == "" {
				return nil, fmt.Errorf("rule %s: requires entry with empty key", ry.ID)
			}
			reqs = append(reqs, rules.Requirement{Key: rq.Key, Expect: rq.Expect})
		}

		out = append(out, rules.Rule{
			ID:        ry.ID,
			Query:     ry.Query,
			Languages: ry.Languages,
			Severity:  sev,
			Message:   ry.Message,
			Fix:       ry.Fix,
			Allow:     ry.Allow,
			Requires:  reqs,
		})
	}
	return out, nil
}

// Load reads rules from a single YAML file.
func Load(path string) ([]rules.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// LoadDir reads every *.yml / *.yaml file in dir, sorted by name so rule
// order is stable across platforms. Duplicate rule ids across files are an
// error.
func LoadDir(dir string) ([]rules.Rule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read rules dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []rules.Rule
	seen := make(map[string]string)
	for _, name := range names {
		rs, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		for _, r := range rs {
			if prev, dup := seen[r.ID]; dup {
				return nil, fmt.Errorf("rule %s defined in both %s and %s", r.ID, prev, name)
			}
			seen[r.ID] = name
		}
		out = append(out, rs...)
	}
	return out, nil
}

// LoadPath loads rules from a file or, if path is a directory, from every
// rule file in it.
func LoadPath(path string) ([]rules.Rule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat rules path: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return Load(path)
}
