package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umlstate/umlstate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a model for structural problems",
	Long:  `Parses the model and reports dangling transition endpoints, duplicate state names, missing initial markers and unreachable states.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := umlstate.New(modelPath(cmd, args))
		if err != nil {
			return err
		}
		if err := eng.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("Model is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
