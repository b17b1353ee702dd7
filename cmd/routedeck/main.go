// Package main provides the routedeck server CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "routedeck:", err)
		os.Exit(exitUserError)
	}
}
