package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the knowledge directory and MCP server options.

Settings are read from config.toml in the configuration directory,
falling back to config.yaml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsDirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Set the knowledge directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDir,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsDirCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Get()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	cmd.Printf("  Directory: %s\n", settings.Corpus.Dir)
	cmd.Printf("  Workers: %d\n", settings.Corpus.Workers)
	cmd.Printf("  Watch: %t\n", settings.Corpus.Watch)
	cmd.Println()

	cmd.Println("[MCP]")
	password := "(not set)"
	if os.Getenv(settings.MCP.PasswordEnv) != "" {
		password = "set"
	}
	cmd.Printf("  Password: %s (from $%s)\n", password, settings.MCP.PasswordEnv)
	if settings.MCP.RateLimit > 0 {
		cmd.Printf("  Rate limit: %d/s (burst %d)\n", settings.MCP.RateLimit, settings.MCP.Burst)
	} else {
		cmd.Println("  Rate limit: off")
	}

	return nil
}

func runSettingsDir(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetCorpusDir(args[0]); err != nil {
		return fmt.Errorf("failed to set directory: %w", err)
	}

	cmd.Printf("Knowledge directory set to %s\n", settingsService.Get().Corpus.Dir)
	return nil
}
