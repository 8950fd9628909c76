package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/npillmayer/casematch/scenario"
)

// ErrCasesFailed is returned if any case of a scenario fails.
var ErrCasesFailed = errors.New("scenario cases failed")

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <scenario.yaml>...",
		Short: "Run scenarios and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(rootOpts, args, cmd.OutOrStdout())
		},
	}
}

func runMatch(opts *RootOptions, paths []string, w io.Writer) error {
	failed := 0
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return err
		}
		report, err := scenario.Run(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if opts.Format == "json" {
			err = report.WriteJSON(w)
		} else {
			err = report.WriteText(w)
		}
		if err != nil {
			return err
		}
		failed += report.Failed()
	}
	if failed > 0 {
		return fmt.Errorf("%d case(s): %w", failed, ErrCasesFailed)
	}
	return nil
}
