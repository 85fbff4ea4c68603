package http

import (
	"github.com/gin-gonic/gin"

	"lifehub-assistant/internal/command"
	"lifehub-assistant/internal/interpreter"
	pkgLog "lifehub-assistant/pkg/log"
)

// Handler is the interface for the HTTP delivery handler.
type Handler interface {
	ProcessCommand(c *gin.Context)
	SearchKnowledge(c *gin.Context)
	ProcessingStatus(c *gin.Context)
}

type handler struct {
	l        pkgLog.Logger
	interp   interpreter.UseCase
	executor command.UseCase
}

// New creates a new HTTP delivery handler.
func New(l pkgLog.Logger, interp interpreter.UseCase, executor command.UseCase) Handler {
	return &handler{
		l:        l,
		interp:   interp,
		executor: executor,
	}
}
