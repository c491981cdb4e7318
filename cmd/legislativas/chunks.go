package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/legislativas/internal/config"
	"github.com/custodia-labs/legislativas/internal/core/domain"
)

var chunksPreview int

var chunksCmd = &cobra.Command{
	Use:   "chunks [party-id]",
	Short: "Show how a party program is chunked",
	Long: `Fetches one party program and prints its chunks with offsets.
Useful for tuning CHUNK_TARGET_SIZE and CHUNK_OVERLAP.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	chunksCmd.Flags().IntVar(&chunksPreview, "preview", 80, "characters of each chunk to print (0 for none)")
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, config.Load(), appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	doc, chunks := a.programs.Chunks(ctx, args[0])
	if !doc.Available() {
		red := color.New(color.FgRed).SprintFunc()
		cmd.Println(red(doc.Detail))
		if doc.Status == domain.DocumentNotFound {
			return fmt.Errorf("%w: no program mapping for %s", domain.ErrNotFound, args[0])
		}
		return fmt.Errorf("program %s is %s", args[0], doc.Status)
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	cmd.Printf("%s %s (%d characters, %d chunks)\n", cyan(a.roster.DisplayName(doc.PartyID)),
		gray(doc.URL), utf8.RuneCountInString(doc.Content), len(chunks))
	for _, c := range chunks {
		cmd.Printf("  [%d] %d-%d %s\n", c.Position, c.StartOffset, c.EndOffset,
			gray(fmt.Sprintf("(%d chars)", utf8.RuneCountInString(c.Content))))
		if p := preview(c, chunksPreview); p != "" {
			cmd.Printf("      %s\n", p)
		}
	}
	return nil
}

// preview returns the first n code points of a chunk on one line
func preview(c domain.Chunk, n int) string {
	if n <= 0 {
		return ""
	}
	text := strings.Join(strings.Fields(c.Content), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
