package command

import (
	"context"

	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
)

// UseCase defines the business logic interface for executing confirmed
// interpreter results against the domain store.
type UseCase interface {
	// Execute persists the entity a CommandResult describes, registers the
	// created artifact in the knowledge index, and for tasks schedules a
	// calendar event. Index and calendar failures are non-fatal.
	Execute(ctx context.Context, sc model.Scope, result *interpreter.CommandResult) (ExecuteOutput, error)

	// Search runs a semantic lookup over previously registered artifacts.
	Search(ctx context.Context, sc model.Scope, input SearchInput) (SearchOutput, error)
}
