package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/umlstate/umlstate"
	"github.com/umlstate/umlstate/pkg/domain"
)

// runCmd drives one session interactively from stdin.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a session interactively",
	Long:  `Starts a session at the initial state and reads signal events from stdin, one per line, until the session terminates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := umlstate.New(modelPath(cmd, args))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		id, snap, err := eng.StartSession(ctx)
		if err != nil {
			return err
		}
		defer eng.EndSession(ctx, id)

		fmt.Printf("session %s started in state %s\n", id, snap.Current)

		reader := bufio.NewReader(os.Stdin)
		for snap.Status == domain.StatusActive {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				// EOF ends the session.
				fmt.Println()
				return nil
			}

			event := strings.TrimSpace(line)
			if event == "" {
				continue
			}
			if event == "exit" || event == "quit" {
				fmt.Println("Bye!")
				return nil
			}

			next, err := eng.SendEvent(ctx, id, event)
			if err != nil {
				fmt.Printf("rejected: %v\n", err)
				continue
			}
			snap = next
			fmt.Printf("-> %s\n", snap.Current)
		}

		fmt.Println("session terminated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
