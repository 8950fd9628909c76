package main

import (
	"github.com/spf13/cobra"

	"github.com/npillmayer/casematch/scenario"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <scenario.yaml>...",
		Short: "Print the pattern trees of scenarios",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				s, err := scenario.Load(path)
				if err != nil {
					return err
				}
				if err = scenario.Explain(s, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
