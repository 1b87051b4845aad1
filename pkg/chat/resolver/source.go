package resolver

import (
	"context"

	"erp-agent-nexus/internal/dto"
)

// Query is what a source needs to answer one user message.
type Query struct {
	Text           string
	RoleId         string
	SimulationMode bool
	History        string // "ROLE: content" lines, oldest first
}

// Source defines the contract for anything that can answer a query.
type Source interface {
	Name() string
	Respond(ctx context.Context, q Query) (*dto.ChatBackendResponse, error)
}

// Retryable is implemented by errors that know whether another attempt could succeed.
// Errors that don't implement it are retried.
type Retryable interface {
	Retryable() bool
}
