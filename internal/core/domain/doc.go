// Package domain defines the core entities for shiori.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A corpus file read from the knowledge directory
//   - Chunk: A retrievable paragraph of a document
//   - Snapshot: One consistent, fully built set of chunks
//   - Passage: A ranked result handed to the caller
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
