package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/casematch/pattern"
)

// Explain writes the structure of every pattern of s.
func Explain(s *Scenario, w io.Writer) error {
	var sb strings.Builder
	dump := func(title string, p pattern.Pattern) {
		fmt.Fprintf(&sb, "%s\n", title)
		if names, err := pattern.Names(p); err != nil {
			fmt.Fprintf(&sb, "invalid: %v\n", err)
		} else if len(names) > 0 {
			fmt.Fprintf(&sb, "binds %s\n", strings.Join(names, ", "))
		}
		sb.WriteString(pattern.Dump(p))
	}
	for _, c := range s.Matches {
		dump("match "+c.Name, c.Pattern.P)
	}
	for _, c := range s.Filters {
		dump("filter "+c.Name, c.Pattern.P)
	}
	for _, c := range s.Switches {
		for i, cl := range c.Clauses {
			dump(fmt.Sprintf("switch %s, clause %d", c.Name, i), cl.Pattern.P)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
