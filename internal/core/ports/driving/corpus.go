package driving

import (
	"context"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// CorpusService exposes the loaded corpus for inspection.
type CorpusService interface {
	// Stats returns the cache state after making sure it is current.
	Stats(ctx context.Context) (domain.CorpusStats, error)

	// Chunk returns a chunk by ID.
	// Returns domain.ErrNotFound if no chunk has that ID.
	Chunk(ctx context.Context, id string) (*domain.Chunk, error)

	// Sources returns the distinct document names, in corpus order.
	Sources(ctx context.Context) ([]string, error)
}
