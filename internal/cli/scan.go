package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhizome-lab/moss/internal/baseline"
	"github.com/rhizome-lab/moss/internal/engine"
	"github.com/rhizome-lab/moss/internal/ruleload"
	"github.com/rhizome-lab/moss/internal/rules"
)

// scanConfig carries the flags shared by scan and fix.
type scanConfig struct {
	rulesPath      string
	ruleID         string
	workers        int
	debugQueries   bool
	baselinePath   string
	updateBaseline bool
	meta           []string
}

func (c *scanConfig) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.rulesPath, "rules", "moss.yaml", "Rule file or directory of rule files")
	cmd.Flags().StringVar(&c.ruleID, "rule", "", "Run only the rule with this id")
	cmd.Flags().IntVar(&c.workers, "workers", 0, "Per-file matching concurrency (0 = NumCPU)")
	cmd.Flags().BoolVar(&c.debugQueries, "debug-queries", false, "Log global rules dropped by per-grammar compile failures")
	cmd.Flags().StringVar(&c.baselinePath, "baseline", "", "Baseline database; recorded findings are hidden")
	cmd.Flags().BoolVar(&c.updateBaseline, "update-baseline", false, "Record the run's findings into the baseline instead of reporting them")
	cmd.Flags().StringArrayVar(&c.meta, "meta", nil, "Source metadata for requires gating, as key=value (repeatable)")
}

// registry builds the SourceRegistry from --meta flags.
func (c *scanConfig) registry() (rules.SourceRegistry, error) {
	if len(c.meta) == 0 {
		return nil, nil
	}
	m := make(rules.MapRegistry, len(c.meta))
	for _, kv := range c.meta {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q, want key=value", kv)
		}
		m[key] = value
	}
	return m, nil
}

// runScan loads rules, runs the engine and applies baseline handling.
func (c *scanConfig) runScan(cmd *cobra.Command, args []string) ([]engine.Finding, error) {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	ruleset, err := ruleload.LoadPath(c.rulesPath)
	if err != nil {
		return nil, err
	}
	registry, err := c.registry()
	if err != nil {
		return nil, err
	}

	findings, err := engine.Run(cmd.Context(), ruleset, root, registry, engine.Options{
		FilterRuleID: c.ruleID,
		Workers:      c.workers,
		DebugQueries: c.debugQueries,
	})
	if err != nil {
		return nil, err
	}

	if c.baselinePath == "" {
		return findings, nil
	}
	store, err := baseline.Open(c.baselinePath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if c.updateBaseline {
		if err := store.Update(findings); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return store.Filter(findings)
}

func newScanCmd() *cobra.Command {
	var (
		cfg     scanConfig
		jsonOut bool
		failOn  string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Run rules over a source tree and report findings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findings, err := cfg.runScan(cmd, args)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := printJSON(cmd.OutOrStdout(), findings); err != nil {
					return err
				}
			} else {
				printFindings(cmd.OutOrStdout(), findings)
			}

			if failOn != "" {
				threshold := rules.Severity(failOn)
				if threshold.Rank() < 0 {
					return fmt.Errorf("unknown --fail-on severity %q", failOn)
				}
				for _, f := range findings {
					if f.Severity.Rank() >= threshold.Rank() {
						return fmt.Errorf("findings at or above %s severity", threshold)
					}
				}
			}
			return nil
		},
	}

	cfg.bind(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output findings as JSON")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Exit non-zero when a finding meets this severity (error, warning, info, hint)")
	return cmd
}
