package driving

import (
	"context"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// SearchService provides retrieval to external actors.
type SearchService interface {
	// Search ranks the corpus against query and returns at most
	// domain.MaxResults passages, best first. It never fails: any
	// problem is logged and yields fewer or zero passages.
	Search(ctx context.Context, query string, opts domain.SearchOptions) []domain.Passage
}
