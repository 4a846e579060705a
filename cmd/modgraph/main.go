// Command modgraph runs the randomized dependency-graph oracle against the
// reference executor and manages recorded failures.
//
//	modgraph run --cases 200 --seed 7 --store ./failures
//	modgraph failures --store ./failures
//	modgraph replay <id> --store ./failures
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
