package usecase

import (
	"context"
	"sync/atomic"

	"lifehub-assistant/pkg/datemath"
	"lifehub-assistant/pkg/llmprovider"
	pkgLog "lifehub-assistant/pkg/log"
)

// Generator is the single model-facing capability the interpreter consumes:
// prompt in, text out. Satisfied by *llmprovider.Manager.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type implUseCase struct {
	l        pkgLog.Logger
	llm      Generator
	dateMath *datemath.Parser

	// processing is advisory: it tells callers a query is in flight so
	// they can gate resubmission. Nothing is enforced internally.
	processing atomic.Bool
}

// New creates a new interpreter UseCase instance.
func New(
	l pkgLog.Logger,
	llm Generator,
	dateMath *datemath.Parser,
) *implUseCase {
	return &implUseCase{
		l:        l,
		llm:      llm,
		dateMath: dateMath,
	}
}
