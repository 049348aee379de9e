// Command eventdesk is the command-line client for the sports event platform.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(newCommandEnv()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must exit with failure status on command errors
	}
}
