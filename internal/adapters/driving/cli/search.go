package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// previewRunes bounds how much of each chunk the text output prints.
const previewRunes = 200

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge directory",
	Long: `Ranks every paragraph of the knowledge directory against the query.

Paragraphs containing the whole query score highest, then those sharing
longer words with it. Queries in Japanese or Chinese also match on pairs
of adjacent characters. At most 15 passages are returned.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.MaxResults, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errNoSearchService
	}

	passages := searchService.Search(cmd.Context(), query, domain.SearchOptions{Limit: searchLimit})

	if searchJSON {
		return outputSearchJSON(cmd, passages)
	}

	outputSearchText(cmd, query, passages)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, passages []domain.Passage) error {
	if passages == nil {
		passages = []domain.Passage{}
	}
	data, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, query string, passages []domain.Passage) {
	cmd.Printf("Query: %s\n", query)
	cmd.Printf("Found %d chunks.\n", len(passages))

	for i, p := range passages {
		cmd.Println()
		cmd.Printf("--- Chunk %d (Source: %s) ---\n", i+1, p.Source)
		cmd.Println(truncate(p.Content, previewRunes))
	}
}

// truncate cuts s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
