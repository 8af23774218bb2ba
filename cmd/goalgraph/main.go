// Command goalgraph plans and runs goal-oriented agent catalogs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
