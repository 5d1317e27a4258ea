// Command slidepuzzle generates and solves sliding-tile puzzles with the
// bestfirst engine.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
