package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/query"
)

func TestNewSearchService(t *testing.T) {
	service := NewSearchService(&mockChunkSource{})
	require.NotNil(t, service)
}

func TestSearchService_Search_JapaneseBigrams(t *testing.T) {
	source := &mockChunkSource{chunks: []domain.Chunk{
		chunk("oils.txt", "ラベンダーは安眠に役立ちます", 0),
		chunk("oils.txt", "ペパーミントは集中力を高めます", 1),
	}}
	service := NewSearchService(source)

	results := service.Search(context.Background(), "安眠に役立つオイルは？", domain.SearchOptions{})

	require.Len(t, results, 1, "the peppermint chunk shares no bigram and must be excluded")
	assert.Equal(t, domain.Passage{Source: "oils.txt", Content: "ラベンダーは安眠に役立ちます"}, results[0])

	f := query.Parse("安眠に役立つオイルは？")
	assert.Equal(t, 4, score(f, source.chunks[0].Normalized), "安眠 眠に に役 役立")
	assert.Equal(t, 0, score(f, source.chunks[1].Normalized))
}

func TestSearchService_Search_JapaneseOrdersByOverlap(t *testing.T) {
	service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{
		chunk("oils.txt", "ペパーミントは集中に役立ちます。", 0),
		chunk("oils.txt", "ラベンダーは安眠に役立つオイルです。", 1),
	}})

	results := service.Search(context.Background(), "安眠に役立つオイルは？", domain.SearchOptions{})

	require.Len(t, results, 2)
	assert.Contains(t, results[0].Content, "ラベンダー")
	assert.Contains(t, results[1].Content, "ペパーミント")
}

func TestSearchService_Search_LatinKeywords(t *testing.T) {
	en := chunk("en.txt", "Lavender helps with sleep and relaxation", 0)
	service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{en}})

	results := service.Search(context.Background(), "lavender sleep", domain.SearchOptions{})

	require.Len(t, results, 1)
	assert.Equal(t, "en.txt", results[0].Source)

	f := query.Parse("lavender sleep")
	assert.Empty(t, f.Bigrams, "no bigrams for a Latin query with keywords")
	assert.Equal(t, 4, score(f, en.Normalized))
}

func TestSearchService_Search_PhraseMatch(t *testing.T) {
	f := query.Parse("Lavender Helps")
	assert.Equal(t, domain.PhraseWeight+2*domain.KeywordWeight,
		score(f, "lavender helps with sleep"))
}

func TestSearchService_Search_StableTies(t *testing.T) {
	service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{
		chunk("file1.txt", "Calm lavender aids sleep.", 0),
		chunk("file2.txt", "Sleep, calm and lavender.", 0),
		chunk("file3.txt", "For lavender sleep calm nights.", 0),
	}})

	results := service.Search(context.Background(), "lavender sleep calm", domain.SearchOptions{})

	require.Len(t, results, 3)
	assert.Equal(t, "file3.txt", results[0].Source, "phrase match ranks first")
	assert.Equal(t, "file1.txt", results[1].Source)
	assert.Equal(t, "file2.txt", results[2].Source)
}

func TestSearchService_Search_ExcludesZeroScores(t *testing.T) {
	service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{
		chunk("a.txt", "Peppermint aids focus.", 0),
		chunk("a.txt", "Lavender aids sleep.", 1),
		chunk("b.txt", "Tea tree for skin.", 0),
	}})

	results := service.Search(context.Background(), "lavender", domain.SearchOptions{})

	require.Len(t, results, 1)
	assert.Equal(t, "Lavender aids sleep.", results[0].Content)

	results = service.Search(context.Background(), "rosemary", domain.SearchOptions{})
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestSearchService_Search_Bound(t *testing.T) {
	chunks := make([]domain.Chunk, 1200)
	for i := range chunks {
		chunks[i] = chunk(fmt.Sprintf("f%04d.txt", i), "Lavender oil note.", 0)
	}
	service := NewSearchService(&mockChunkSource{chunks: chunks})

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, domain.MaxResults},
		{"negative", -3, domain.MaxResults},
		{"above max", 500, domain.MaxResults},
		{"smaller", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := service.Search(context.Background(), "lavender", domain.SearchOptions{Limit: tt.limit})
			require.Len(t, results, tt.want)
			assert.Equal(t, "f0000.txt", results[0].Source)
			assert.Equal(t, fmt.Sprintf("f%04d.txt", tt.want-1), results[tt.want-1].Source)
		})
	}
}

func TestSearchService_Search_Deterministic(t *testing.T) {
	service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{
		chunk("a.md", "Lavender and chamomile for sleep.", 0),
		chunk("a.md", "Chamomile tea.", 1),
		chunk("b.md", "Sleep hygiene basics.", 0),
		chunk("c.md", "ラベンダーの香り", 0),
	}})

	first := service.Search(context.Background(), "chamomile sleep", domain.SearchOptions{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, service.Search(context.Background(), "chamomile sleep", domain.SearchOptions{}))
	}
}

func TestSearchService_Search_EmptyInputs(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		service := NewSearchService(&mockChunkSource{})
		results := service.Search(context.Background(), "lavender", domain.SearchOptions{})
		assert.Empty(t, results)
		assert.NotNil(t, results)
	})

	t.Run("empty query matches every chunk", func(t *testing.T) {
		var chunks []domain.Chunk
		for i := range 20 {
			chunks = append(chunks, chunk("a.txt", fmt.Sprintf("Paragraph %d.", i), i))
		}
		service := NewSearchService(&mockChunkSource{chunks: chunks})

		results := service.Search(context.Background(), "", domain.SearchOptions{})

		require.Len(t, results, domain.MaxResults)
		for i, r := range results {
			assert.Equal(t, fmt.Sprintf("Paragraph %d.", i), r.Content, "corpus order")
		}

		few := NewSearchService(&mockChunkSource{chunks: chunks[:2]})
		assert.Len(t, few.Search(context.Background(), "", domain.SearchOptions{}), 2)
	})

	t.Run("whitespace query matches as a phrase", func(t *testing.T) {
		service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{
			chunk("a.txt", "alpha beta", 0),
			chunk("a.txt", "gamma  delta", 1),
		}})

		results := service.Search(context.Background(), "  ", domain.SearchOptions{})

		require.Len(t, results, 1)
		assert.Equal(t, "gamma  delta", results[0].Content)
		assert.Empty(t, service.Search(context.Background(), "\t\n", domain.SearchOptions{}))
	})

	t.Run("short Latin query uses bigrams", func(t *testing.T) {
		service := NewSearchService(&mockChunkSource{chunks: []domain.Chunk{
			chunk("a.txt", "Oil blends.", 0),
			chunk("a.txt", "Nothing here.", 1),
		}})
		results := service.Search(context.Background(), "oi", domain.SearchOptions{})
		require.Len(t, results, 1)
		assert.Equal(t, "Oil blends.", results[0].Content)
	})
}

func TestSearchService_Search_Failures(t *testing.T) {
	tests := []struct {
		name   string
		source *mockChunkSource
		ctx    func() context.Context
	}{
		{
			name:   "loader error",
			source: &mockChunkSource{err: errors.New("disk on fire")},
			ctx:    context.Background,
		},
		{
			name:   "loader panic",
			source: &mockChunkSource{panicMsg: "boom"},
			ctx:    context.Background,
		},
		{
			name:   "cancelled context",
			source: &mockChunkSource{chunks: []domain.Chunk{chunk("a.txt", "Lavender.", 0)}},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSearchService(tt.source)

			var results []domain.Passage
			require.NotPanics(t, func() {
				results = service.Search(tt.ctx(), "lavender", domain.SearchOptions{})
			})
			assert.Empty(t, results)
			assert.NotNil(t, results)
		})
	}

	t.Run("nil source", func(t *testing.T) {
		service := NewSearchService(nil)
		assert.Empty(t, service.Search(context.Background(), "lavender", domain.SearchOptions{}))
	})
}

func TestScore_Monotonic(t *testing.T) {
	f := query.Parse("lavender sleep oil")
	base := "lavender for rest"

	tests := []struct {
		name     string
		extended string
	}{
		{"adds keyword", base + " and sleep"},
		{"adds second keyword", base + " and sleep with oil"},
		{"adds phrase", base + " lavender sleep oil"},
	}

	prev := score(f, base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := score(f, tt.extended)
			assert.Greater(t, got, prev)
			prev = got
		})
	}
}

func TestScore_NoCap(t *testing.T) {
	f := query.Parse("ああいいうう")
	// Every bigram present, plus the phrase and the single keyword.
	got := score(f, "ああいいうう")
	assert.Equal(t, domain.PhraseWeight+domain.KeywordWeight+len(f.Bigrams)*domain.BigramWeight, got)
}
