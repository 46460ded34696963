// Package paragraph provides a blank-line paragraph segmentation processor.
package paragraph

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// byteOrderMark is dropped from the start of a document.
const byteOrderMark = "\uFEFF"

// Processor splits document content into paragraphs: maximal runs of
// non-blank lines separated by one or more blank lines. A blank line is
// one containing only whitespace. It implements the PostProcessor interface.
type Processor struct{}

// New creates a new paragraph processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "paragraph"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
// A document without blank lines yields a single chunk. A leading
// byte order mark is not part of the first paragraph.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	content := strings.TrimPrefix(doc.Content, byteOrderMark)
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	var chunks []domain.Chunk
	var para []string

	flush := func() {
		if len(para) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(para, "\n"))
		para = para[:0]
		if text == "" {
			return
		}
		chunks = append(chunks, domain.Chunk{
			ID:       ChunkID(doc.Name, len(chunks)),
			Source:   doc.Name,
			Content:  text,
			Position: len(chunks),
		})
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, line)
	}
	flush()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// ChunkID derives a stable identifier from a source name and paragraph position.
func ChunkID(source string, position int) string {
	name := "shiori://chunks/" + source + "/" + strconv.Itoa(position)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
