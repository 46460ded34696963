package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shiori/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/core/services"
	"github.com/custodia-labs/shiori/internal/logger"
)

var testPassages = []domain.Passage{
	{Source: "sleep.md", Content: "Lavender helps with sleep."},
	{Source: "tea.txt", Content: "Chamomile tea before bed."},
}

// mockSearchService records the last call and returns fixed passages.
type mockSearchService struct {
	passages  []domain.Passage
	lastQuery string
	lastOpts  domain.SearchOptions
	calls     int
}

func (m *mockSearchService) Search(_ context.Context, q string, opts domain.SearchOptions) []domain.Passage {
	m.calls++
	m.lastQuery = q
	m.lastOpts = opts
	return m.passages
}

type mockCorpusService struct {
	stats   domain.CorpusStats
	sources []string
	err     error
}

func (m *mockCorpusService) Stats(_ context.Context) (domain.CorpusStats, error) {
	return m.stats, m.err
}

func (m *mockCorpusService) Chunk(_ context.Context, _ string) (*domain.Chunk, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCorpusService) Sources(_ context.Context) ([]string, error) {
	return m.sources, m.err
}

type testServices struct {
	search   *mockSearchService
	corpus   *mockCorpusService
	settings *services.SettingsService
}

// setupTestServices injects mock services and returns a cleanup
// function that restores package state.
func setupTestServices(seed ...map[string]any) (*testServices, func()) {
	ts := &testServices{
		search: &mockSearchService{passages: testPassages},
		corpus: &mockCorpusService{
			stats:   domain.CorpusStats{Dir: "knowledge", Files: 2, Chunks: 5, Reloads: 1},
			sources: []string{"sleep.md", "tea.txt"},
		},
		settings: services.NewSettingsService(memory.NewConfigStore(seed...)),
	}
	SetServices(&Services{
		Search:   ts.search,
		Corpus:   ts.corpus,
		Settings: ts.settings,
	})
	return ts, resetState
}

func resetState() {
	SetServices(nil)
	SetBootstrap(nil)
	searchLimit = domain.MaxResults
	searchJSON = false
	statsJSON = false
	verbose = false
	corpusDir = ""
	configDir = ""
	logger.SetVerbose(false)
	rootCmd.SetArgs(nil)
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func requireNoError(t *testing.T, out string, err error) {
	t.Helper()
	require.NoError(t, err, "output: %s", out)
}
