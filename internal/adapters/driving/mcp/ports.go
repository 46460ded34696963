package mcp

import (
	"github.com/custodia-labs/shiori/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides retrieval.
	Search driving.SearchService

	// Corpus backs the corpus and chunk resources. Optional.
	Corpus driving.CorpusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
