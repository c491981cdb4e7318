package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/legislativas/internal/config"
)

var partiesCmd = &cobra.Command{
	Use:   "parties",
	Short: "List the configured parties",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := config.LoadRoster(config.GetEnv("PARTIES_FILE", ""))
		if err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, p := range roster.Parties() {
			cmd.Printf("  %-4s %s %s\n", bold(p.ID), p.Name, gray(p.Filename+".md"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(partiesCmd)
}
