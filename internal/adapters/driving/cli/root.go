// Package cli provides the shiori command-line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shiori/internal/core/ports/driving"
	"github.com/custodia-labs/shiori/internal/logger"
)

// skipSetup marks commands that run without services.
const skipSetup = "skip-setup"

var (
	version = "dev"

	configDir string
	corpusDir string
	verbose   bool

	searchService   driving.SearchService
	corpusService   driving.CorpusService
	settingsService driving.SettingsService
	watchCorpus     WatchFunc
	closeServices   func() error

	bootstrap Bootstrapper
)

// WatchFunc starts watching the corpus and reports changed files
// until ctx is cancelled.
type WatchFunc func(ctx context.Context) (<-chan string, error)

// Options carries the global flags to the bootstrapper.
type Options struct {
	// ConfigDir overrides the configuration directory. Empty means default.
	ConfigDir string

	// CorpusDir overrides the configured knowledge directory.
	CorpusDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the driving ports the commands run against.
type Services struct {
	Search   driving.SearchService
	Corpus   driving.CorpusService
	Settings driving.SettingsService

	// Watch is optional.
	Watch WatchFunc

	// Close releases resources after the command finishes. Optional.
	Close func() error
}

// Bootstrapper builds services once flags are parsed.
type Bootstrapper func(opts Options) (*Services, error)

var rootCmd = &cobra.Command{
	Use:   "shiori",
	Short: "Ground assistant answers in a local knowledge directory",
	Long: `shiori loads a directory of .txt and .md files, splits them into
paragraphs and ranks them against natural-language questions.

It can be used directly from the command line, as an MCP tool server
for an AI assistant, or through an interactive terminal UI.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "configuration directory (default ~/.shiori)")
	rootCmd.PersistentFlags().StringVar(&corpusDir, "dir", "", "knowledge directory (overrides corpus.dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function used to build services before a command runs.
func SetBootstrap(b Bootstrapper) {
	bootstrap = b
}

// SetServices injects services directly, bypassing the bootstrapper.
func SetServices(s *Services) {
	if s == nil {
		searchService, corpusService, settingsService = nil, nil, nil
		watchCorpus, closeServices = nil, nil
		return
	}
	searchService = s.Search
	corpusService = s.Corpus
	settingsService = s.Settings
	watchCorpus = s.Watch
	closeServices = s.Close
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which is cancelled
// to stop long-running commands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if cmd.Annotations[skipSetup] == "true" || searchService != nil || bootstrap == nil {
		return nil
	}

	services, err := bootstrap(Options{
		ConfigDir: configDir,
		CorpusDir: corpusDir,
		Verbose:   verbose,
	})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// startWatcher invalidates the corpus cache on file changes while ctx lives.
// It is a no-op when watching is disabled or unavailable.
func startWatcher(ctx context.Context) {
	if watchCorpus == nil || settingsService == nil || !settingsService.Get().Corpus.Watch {
		return
	}
	events, err := watchCorpus(ctx)
	if err != nil {
		logger.Warn("corpus watcher not started: %v", err)
		return
	}
	go func() {
		for name := range events {
			logger.Debug("corpus changed: %s", name)
		}
	}()
}

var errNoSearchService = errors.New("search service not configured")
