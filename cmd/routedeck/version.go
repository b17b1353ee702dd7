// Version command for the routedeck CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routedeck/routedeck/pkg/routedeck"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the routedeck version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("routedeck", routedeck.Version)
	},
}
