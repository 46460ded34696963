package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the state of the corpus cache",
	Long: `Loads the knowledge directory if needed and reports how many files
and chunks it holds, when the cache was built and how many reloads ran.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	stats, err := corpusService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	sources, err := corpusService.Sources(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(struct {
			Stats   domain.CorpusStats `json:"stats"`
			Sources []string           `json:"sources"`
		}{stats, sources}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Directory: %s\n", stats.Dir)
	cmd.Printf("Files:     %d\n", stats.Files)
	cmd.Printf("Chunks:    %d\n", stats.Chunks)
	if stats.BuiltAt.IsZero() {
		cmd.Println("Built:     never")
	} else {
		cmd.Printf("Built:     %s\n", stats.BuiltAt.Format(time.RFC3339))
	}
	cmd.Printf("Reloads:   %d\n", stats.Reloads)

	if len(sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, s := range sources {
			cmd.Printf("  %s\n", s)
		}
	}
	return nil
}
