package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// mockChunkSource implements driven.ChunkSource for testing.
type mockChunkSource struct {
	mu       sync.Mutex
	chunks   []domain.Chunk
	err      error
	panicMsg string
	calls    int
}

func (m *mockChunkSource) Chunks(ctx context.Context) ([]domain.Chunk, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

func (m *mockChunkSource) Stats() domain.CorpusStats {
	files := make(map[string]bool)
	for _, ch := range m.chunks {
		files[ch.Source] = true
	}
	return domain.CorpusStats{Dir: "knowledge", Files: len(files), Chunks: len(m.chunks), Reloads: 1}
}

// chunk builds a loaded chunk the way the paragraph pipeline would.
func chunk(source, content string, position int) domain.Chunk {
	return domain.Chunk{
		ID:         source + "#" + string(rune('0'+position)),
		Source:     source,
		Content:    content,
		Normalized: strings.ToLower(content),
		Position:   position,
	}
}
