package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/umlstate/umlstate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of umlstate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("umlstate version %s\n", strings.TrimSpace(umlstate.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
