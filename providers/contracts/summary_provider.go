package contracts

import (
	"context"
	"encoding/json"

	"github.com/Shahfarzane/CursorFocus/providers/models"
)

// SummaryProvider is the remote text-generation collaborator. Both calls are
// optional enrichments: callers must treat any error as "no prose available"
// and fall back to generated defaults.
type SummaryProvider interface {
	// Summarize returns a short prose overview of the project.
	Summarize(ctx context.Context, req models.SummaryRequest) (string, error)

	// GenerateRules returns an ai_behavior JSON object for .cursorrules.
	GenerateRules(ctx context.Context, req models.SummaryRequest) (json.RawMessage, error)

	// Enabled reports whether the provider is configured with a credential.
	Enabled() bool
}
