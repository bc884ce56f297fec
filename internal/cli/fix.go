package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rhizome-lab/moss/internal/engine"
)

func newFixCmd() *cobra.Command {
	var cfg scanConfig

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Run rules and rewrite fixable findings in place",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			findings, err := cfg.runScan(cmd, args)
			if err != nil {
				return err
			}

			fixable := 0
			for i := range findings {
				if findings[i].Fixable() {
					fixable++
				}
			}

			written, err := engine.ApplyFixes(findings)
			if err != nil {
				return fmt.Errorf("apply fixes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d fixes across %d files\n", fixable, written)
			return nil
		},
	}

	cfg.bind(cmd)
	return cmd
}
