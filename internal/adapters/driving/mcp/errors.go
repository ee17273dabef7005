// Package mcp provides an MCP (Model Context Protocol) server adapter for gdpr-rag.
// It lets AI assistants retrieve GDPR article text and ask grounded questions.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
