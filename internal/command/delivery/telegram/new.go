package telegram

import (
	"github.com/gin-gonic/gin"

	"lifehub-assistant/internal/command"
	"lifehub-assistant/internal/interpreter"
	pkgLog "lifehub-assistant/pkg/log"
	pkgTelegram "lifehub-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

type handler struct {
	l        pkgLog.Logger
	interp   interpreter.UseCase
	executor command.UseCase
	bot      *pkgTelegram.Bot
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	interp interpreter.UseCase,
	executor command.UseCase,
	bot *pkgTelegram.Bot,
) Handler {
	return &handler{
		l:        l,
		interp:   interp,
		executor: executor,
		bot:      bot,
	}
}
