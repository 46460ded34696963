// Command shiori grounds assistant answers in a local knowledge directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/shiori/internal/adapters/driven/config/file"
	"github.com/custodia-labs/shiori/internal/adapters/driven/corpus/filesystem"
	"github.com/custodia-labs/shiori/internal/adapters/driving/cli"
	"github.com/custodia-labs/shiori/internal/core/services"
	"github.com/custodia-labs/shiori/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetBootstrap(wire)

	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the adapters and services for one command run.
func wire(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	settings := settingsService.Get()
	if opts.CorpusDir != "" {
		settings.Corpus.Dir = opts.CorpusDir
	}
	if settings.Verbose {
		logger.SetVerbose(true)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	corpus, err := filesystem.New(settings.Corpus.Dir, filesystem.WithWorkers(settings.Corpus.Workers))
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	logger.Debug("Config: %s, corpus: %s", store.Path(), corpus.Dir())

	return &cli.Services{
		Search:   services.NewSearchService(corpus),
		Corpus:   services.NewCorpusService(corpus),
		Settings: settingsService,
		Watch:    corpus.Watch,
		Close:    corpus.Close,
	}, nil
}
