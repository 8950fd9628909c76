package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Trace  string // "Error" | "Info" | "Debug"
	Format string // "text" | "json"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidTraceLevels defines the allowed trace levels.
var ValidTraceLevels = []string{"Error", "Info", "Debug"}

// NewRootCommand creates the root command for the casematch CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "casematch",
		Short: "Pattern matching and subscript scenarios",
		Long: `Run scenarios of structural pattern matches, switch clauses and
overloaded subscripts, and check their expected outcomes.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !oneOf(opts.Format, ValidFormats, false) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !oneOf(opts.Trace, ValidTraceLevels, true) {
				return fmt.Errorf("invalid trace level %q: must be one of %v", opts.Trace, ValidTraceLevels)
			}
			return setupTracing(opts.Trace)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.Trace, "trace", "Error", "trace level (Error|Info|Debug)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	return cmd
}

func oneOf(s string, valid []string, ignoreCase bool) bool {
	for _, v := range valid {
		if s == v || (ignoreCase && strings.EqualFold(s, v)) {
			return true
		}
	}
	return false
}
