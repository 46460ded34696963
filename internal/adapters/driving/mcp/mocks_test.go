package mcp

import (
	"context"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   []domain.Passage
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) []domain.Passage {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	stats   domain.CorpusStats
	chunks  map[string]domain.Chunk
	sources []string
	err     error
}

func (m *mockCorpusService) Stats(_ context.Context) (domain.CorpusStats, error) {
	return m.stats, m.err
}

func (m *mockCorpusService) Chunk(_ context.Context, id string) (*domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch, ok := m.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ch, nil
}

func (m *mockCorpusService) Sources(_ context.Context) ([]string, error) {
	return m.sources, m.err
}
