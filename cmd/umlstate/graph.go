package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/umlstate/umlstate"
)

// graphCmd exports the machine as Graphviz DOT.
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the machine as a Graphviz diagram",
	Long:  `Parses the model and prints a DOT document on stdout (pipe into 'dot -Tsvg').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := umlstate.New(modelPath(cmd, args))
		if err != nil {
			return err
		}
		out, err := eng.DOT()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
