// Package lowercase provides the processor that fills Chunk.Normalized.
package lowercase

import (
	"context"
	"strings"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// Processor stores the lowercased content on each chunk so queries
// never lowercase the corpus again. It implements the PostProcessor interface.
type Processor struct{}

// New creates a new lowercase processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "lowercase"
}

// Process sets Normalized on every chunk and returns them.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		chunks[i].Normalized = strings.ToLower(chunks[i].Content)
	}
	return chunks, nil
}
