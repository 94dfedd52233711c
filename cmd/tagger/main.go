// Command tagger runs the newsletter tag-classification pipeline and its
// supporting tooling: batch runs, single-item runs, label maintenance,
// the read-side HTTP API, and schema migrations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
