package driven

import (
	"context"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// ChunkSource supplies the chunks a query is scored against.
type ChunkSource interface {
	// Chunks returns one consistent snapshot of the corpus, in
	// segmentation order. Implementations may reload from storage
	// when the cached snapshot is stale. The returned slice must
	// not be modified by the caller.
	Chunks(ctx context.Context) ([]domain.Chunk, error)

	// Stats describes the current cache without triggering a reload.
	Stats() domain.CorpusStats
}
