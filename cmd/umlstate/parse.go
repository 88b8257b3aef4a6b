package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/umlstate/umlstate"
	"github.com/umlstate/umlstate/internal/dto"
)

// parseCmd flattens a model and dumps the records.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Flatten a model into state and transition records",
	Long:  `Parses the model file and prints the flattened records to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := modelPath(cmd, args)
		asJSON, _ := cmd.Flags().GetBool("json")

		eng, err := umlstate.New(path)
		if err != nil {
			return err
		}
		result := eng.Result()

		if asJSON {
			out := dto.MachineResponse{}
			for _, s := range result.States() {
				out.States = append(out.States, dto.StateResponse{
					Parent: s.Parent, Name: s.Name, Initial: s.Initial,
				})
			}
			for _, t := range result.Transitions() {
				out.Transitions = append(out.Transitions, dto.TransitionResponse{
					Source: t.Source, Target: t.Target, Event: t.Event,
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Println("States:")
		for _, s := range result.States() {
			marker := " "
			if s.Initial {
				marker = "*"
			}
			if s.TopLevel() {
				fmt.Printf("  %s %s\n", marker, s.Name)
			} else {
				fmt.Printf("  %s %s (in %s)\n", marker, s.Name, s.Parent)
			}
		}
		fmt.Println("Transitions:")
		for _, t := range result.Transitions() {
			fmt.Printf("    %s --%s--> %s\n", t.Source, t.Event, t.Target)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("json", false, "Print records as JSON")
}

// modelPath resolves the model file from the --model flag or the first
// positional argument.
func modelPath(cmd *cobra.Command, args []string) string {
	path, _ := cmd.Flags().GetString("model")
	if !cmd.Flags().Changed("model") && len(args) > 0 {
		path = args[0]
	}
	return path
}
