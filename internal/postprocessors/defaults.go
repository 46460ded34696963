package postprocessors

import (
	"github.com/custodia-labs/shiori/internal/postprocessors/lowercase"
	"github.com/custodia-labs/shiori/internal/postprocessors/paragraph"
)

// DefaultPipeline returns the pipeline every corpus document goes through:
// paragraph segmentation, then lowercasing for scoring.
func DefaultPipeline() *Pipeline {
	return NewPipeline(paragraph.New(), lowercase.New())
}
