package mcp

import (
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Retrieval provides semantic search over stored policy content.
	Retrieval driving.RetrievalService

	// Chat answers policy questions. Optional; the ask tool is not
	// registered without it.
	Chat driving.ChatService

	// Parties lists the tracked parties. Optional.
	Parties driven.PartyStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
