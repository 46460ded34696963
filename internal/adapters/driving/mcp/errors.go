// Package mcp provides an MCP (Model Context Protocol) server adapter for shiori.
// It lets a conversational assistant pull grounding passages from the local
// knowledge directory through a search tool and corpus resources.
package mcp

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/shiori/internal/core/domain"
)

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingPassword is returned when HTTP mode is started without a password.
var ErrMissingPassword = fmt.Errorf("%w: mcp: HTTP mode requires a password", domain.ErrConfiguration)
