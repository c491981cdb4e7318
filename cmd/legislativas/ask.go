package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/legislativas/internal/config"
	"github.com/custodia-labs/legislativas/internal/core/domain"
)

var (
	askParties []string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question from the terminal",
	Long: `Runs the full answer pipeline once and prints the result.

Examples:
  # Ask across every party
  legislativas ask "O que propõem para a habitação?"

  # Compare two parties
  legislativas ask --party PS --party AD "Qual a posição sobre o IRS?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringSliceVarP(&askParties, "party", "p", nil, "party ID to include (repeatable, default all)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, config.Load(), appOptions{needLLM: true})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.answers.Answer(ctx, domain.AnswerRequest{
		Question:         strings.Join(args, " "),
		SelectedPartyIDs: askParties,
	})
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAnswer(cmd, a.roster, result)
	return nil
}

func printAnswer(cmd *cobra.Command, roster *domain.Roster, result *domain.AnswerResult) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	outcome := green(string(result.Outcome))
	if result.Outcome != domain.OutcomeAnswered {
		outcome = yellow(string(result.Outcome))
	}

	cmd.Printf("%s %s\n", cyan("Question:"), result.Query)
	cmd.Printf("%s %s  %s\n", cyan("Outcome:"), outcome, gray(fmt.Sprintf("~%d tokens", result.EstimatedTokens)))
	cmd.Println()
	cmd.Println(result.Answer)
	cmd.Println()

	ids := make([]string, 0, len(result.SourceDocuments))
	for _, id := range roster.IDs() {
		if _, ok := result.SourceDocuments[id]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		cmd.Printf("%s %s\n", gray("Sources:"), gray(strings.Join(ids, ", ")))
	}
}
