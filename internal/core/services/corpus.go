package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/core/ports/driven"
	"github.com/custodia-labs/shiori/internal/core/ports/driving"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService exposes the loaded corpus for inspection.
type CorpusService struct {
	source driven.ChunkSource
}

// NewCorpusService creates a new corpus service.
func NewCorpusService(source driven.ChunkSource) *CorpusService {
	return &CorpusService{source: source}
}

// Stats refreshes the cache if stale and reports its state.
func (s *CorpusService) Stats(ctx context.Context) (domain.CorpusStats, error) {
	if _, err := s.source.Chunks(ctx); err != nil {
		return s.source.Stats(), fmt.Errorf("load corpus: %w", err)
	}
	return s.source.Stats(), nil
}

// Chunk retrieves a chunk by ID.
func (s *CorpusService) Chunk(ctx context.Context, id string) (*domain.Chunk, error) {
	chunks, err := s.source.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	for i := range chunks {
		if chunks[i].ID == id {
			ch := chunks[i]
			return &ch, nil
		}
	}
	return nil, fmt.Errorf("chunk %s: %w", id, domain.ErrNotFound)
}

// Sources lists document names in corpus order.
func (s *CorpusService) Sources(ctx context.Context) ([]string, error) {
	chunks, err := s.source.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	sources := make([]string, 0)
	seen := make(map[string]bool)
	for i := range chunks {
		if !seen[chunks[i].Source] {
			seen[chunks[i].Source] = true
			sources = append(sources, chunks[i].Source)
		}
	}
	return sources, nil
}
