/*
Command casematch runs pattern matching and subscript scenarios.

	casematch match scenario.yaml...
	casematch explain scenario.yaml...

Scenarios are YAML files as described in package scenario. The match command
prints one line per case and exits with status 1 if any expectation fails.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
