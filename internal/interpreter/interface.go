package interpreter

import (
	"context"

	"lifehub-assistant/internal/model"
)

// UseCase defines the business logic interface for the command interpreter.
type UseCase interface {
	// ProcessQuery runs the full interpretation pipeline for one utterance:
	// mention parsing, intent classification, slot extraction, and
	// confirmation synthesis. Malformed model output degrades the result;
	// only an unreachable model service returns an error.
	ProcessQuery(ctx context.Context, sc model.Scope, ip ProcessInput) (*CommandResult, error)
	// IsProcessing reports whether a ProcessQuery call is currently in
	// flight on this instance. Advisory only: callers use it to gate
	// resubmission, nothing is enforced internally.
	IsProcessing() bool
}
