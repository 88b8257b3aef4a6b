package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "umlstate",
	Short: "umlstate parses and runs hierarchical state machine models",
	Long: `umlstate flattens a hierarchical state machine model into plain state and
transition records, and can validate, visualize, run or serve the result.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("model", "m", "model.yaml", "Path to the model file")
}
