package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/core/ports/driven"
	"github.com/custodia-labs/shiori/internal/core/ports/driving"
	"github.com/custodia-labs/shiori/internal/logger"
	"github.com/custodia-labs/shiori/internal/query"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// scoredChunk holds a candidate between scoring and projection.
type scoredChunk struct {
	index int
	score int
}

// SearchService ranks corpus chunks against free-text queries.
type SearchService struct {
	source driven.ChunkSource
}

// NewSearchService creates a new search service.
func NewSearchService(source driven.ChunkSource) *SearchService {
	return &SearchService{source: source}
}

// Search returns the best-scoring passages for q, at most
// opts.EffectiveLimit() of them. Failures of any kind, panics
// included, are logged and produce an empty result.
func (s *SearchService) Search(ctx context.Context, q string, opts domain.SearchOptions) (passages []domain.Passage) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Search panicked: %v", r)
			passages = []domain.Passage{}
		}
	}()

	logger.Section("Search Execution")
	logger.Debug("Query: %q", q)

	passages, err := s.search(ctx, q, opts)
	if err != nil {
		logger.Error("Search failed: %v", err)
		return []domain.Passage{}
	}

	logger.Info("Final results: %d", len(passages))
	return passages
}

func (s *SearchService) search(ctx context.Context, q string, opts domain.SearchOptions) ([]domain.Passage, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no chunk source configured", domain.ErrCorpusUnavailable)
	}

	chunks, err := s.source.Chunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorpusUnavailable, err)
	}
	if len(chunks) == 0 {
		logger.Debug("Corpus is empty, returning no results")
		return []domain.Passage{}, nil
	}

	features := query.Parse(q)
	logger.Debug("Keywords: %q", features.Keywords)
	logger.Debug("Bigrams: %d", len(features.Bigrams))

	var scored []scoredChunk
	for i := range chunks {
		if sc := score(features, chunks[i].Normalized); sc > 0 {
			scored = append(scored, scoredChunk{index: i, score: sc})
		}
	}
	logger.Debug("Matched %d of %d chunks", len(scored), len(chunks))

	// Stable, so equal scores keep corpus order.
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if limit := opts.EffectiveLimit(); len(scored) > limit {
		scored = scored[:limit]
	}

	passages := make([]domain.Passage, len(scored))
	for i, sc := range scored {
		ch := chunks[sc.index]
		passages[i] = domain.Passage{Source: ch.Source, Content: ch.Content}
	}
	return passages, nil
}

// score computes the relevance of normalized chunk text to the query.
func score(f query.Features, normalized string) int {
	total := 0
	if strings.Contains(normalized, f.Phrase) {
		total += domain.PhraseWeight
	}
	for _, kw := range f.Keywords {
		if strings.Contains(normalized, kw) {
			total += domain.KeywordWeight
		}
	}
	for _, bg := range f.Bigrams {
		if strings.Contains(normalized, bg) {
			total += domain.BigramWeight
		}
	}
	return total
}
