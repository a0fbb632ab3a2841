// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants search the local policy database and ask the
// policy assistant directly.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is
// not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
