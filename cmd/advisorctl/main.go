// Command advisorctl runs the advisor pipeline from the terminal. It uses the
// deterministic estimators only, so it needs no network or API keys.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
