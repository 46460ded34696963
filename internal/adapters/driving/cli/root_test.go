package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shiori/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/core/services"
	"github.com/custodia-labs/shiori/internal/logger"
)

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "dir", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_Bootstrap(t *testing.T) {
	resetState()
	defer resetState()

	var got Options
	closed := 0
	SetBootstrap(func(opts Options) (*Services, error) {
		got = opts
		return &Services{
			Search:   &mockSearchService{},
			Corpus:   &mockCorpusService{sources: []string{}},
			Settings: services.NewSettingsService(memory.NewConfigStore()),
			Close: func() error {
				closed++
				return nil
			},
		}, nil
	})

	out, err := execute(t, "--config", "/etc/shiori", "--dir", "/srv/kb", "-v", "stats")
	requireNoError(t, out, err)

	assert.Equal(t, Options{ConfigDir: "/etc/shiori", CorpusDir: "/srv/kb", Verbose: true}, got)
	assert.True(t, logger.IsVerbose())
	assert.Equal(t, 1, closed, "services closed after the command")
	assert.Nil(t, closeServices)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	resetState()
	defer resetState()
	SetBootstrap(func(Options) (*Services, error) {
		return nil, domain.ErrInvalidInput
	})

	_, err := execute(t, "stats")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "initialise")
}

func TestRootCmd_InjectedServicesSkipBootstrap(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	called := false
	SetBootstrap(func(Options) (*Services, error) {
		called = true
		return nil, errors.New("unexpected")
	})

	out, err := execute(t, "stats")
	requireNoError(t, out, err)

	assert.False(t, called)
}

func TestRootCmd_CloseError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	closeServices = func() error { return errors.New("release failed") }

	_, err := execute(t, "stats")

	assert.EqualError(t, err, "release failed")
}

func TestStartWatcher(t *testing.T) {
	t.Run("drains events until cancelled", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		events := make(chan string, 1)
		var watchCtx context.Context
		watchCorpus = func(ctx context.Context) (<-chan string, error) {
			watchCtx = ctx
			return events, nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		startWatcher(ctx)

		require.NotNil(t, watchCtx)
		events <- "a.md"
		assert.Eventually(t, func() bool { return len(events) == 0 }, time.Second, 10*time.Millisecond)
		close(events)
	})

	t.Run("disabled by settings", func(t *testing.T) {
		_, cleanup := setupTestServices(map[string]any{domain.KeyCorpusWatch: false})
		defer cleanup()

		called := false
		watchCorpus = func(context.Context) (<-chan string, error) {
			called = true
			return nil, nil
		}

		startWatcher(context.Background())

		assert.False(t, called)
	})

	t.Run("watch error is not fatal", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()
		watchCorpus = func(context.Context) (<-chan string, error) {
			return nil, errors.New("no inotify")
		}

		assert.NotPanics(t, func() { startWatcher(context.Background()) })
	})

	t.Run("no watcher", func(t *testing.T) {
		_, cleanup := setupTestServices()
		defer cleanup()

		assert.NotPanics(t, func() { startWatcher(context.Background()) })
	})
}
