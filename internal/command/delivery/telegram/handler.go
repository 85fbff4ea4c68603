package telegram

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
	pkgResponse "lifehub-assistant/pkg/response"
	pkgTelegram "lifehub-assistant/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine: Telegram expects an answer within a few seconds,
// and the interpretation pipeline (one or two model calls plus the store
// write) can take longer than that.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races
	// on the gin context.
	msg := update.Message

	go func() {
		// Detach from the request context, which is cancelled after the
		// 200 goes out.
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong handling your message. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage runs one Telegram message through the interpreter and,
// for actionable intents, the executor.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	switch msg.Text {
	case "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"👋 Welcome to *LifeHub Assistant*!\n\nTell me what you want in plain language and I'll sort it into your tasks, notes, journal, or budget.\n\n_Examples:_\n`@task renew my passport`\n`I spent 25 on lunch today`\n`@note the wifi password is on the fridge`",
			"Markdown",
		)
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID,
			"*How to use:*\n\nJust type a command in plain language. Use an @mention to skip classification:\n`@task`, `@note`, `@journal`, `@budget`, `@goal`, `@finance`, `@recurring`, `@transfer`, `@search` ...\n\nWithout a mention I'll work out the intent myself.",
			"Markdown",
		)
	}

	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}

	result, err := h.interp.ProcessQuery(ctx, sc, interpreter.ProcessInput{Query: msg.Text})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: ProcessQuery failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, fmt.Sprintf("I couldn't process that: %v", err))
	}

	if result.Confirmation != "" {
		if err := h.bot.SendMessage(msg.Chat.ID, result.Confirmation); err != nil {
			h.l.Warnf(ctx, "telegram handler: failed to send confirmation: %v", err)
		}
	}

	out, err := h.executor.Execute(ctx, sc, result)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: Execute failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, "I understood your command but couldn't save it. Please try again.")
	}

	if !out.Executed {
		// Conversational intents have nothing to report beyond the
		// confirmation (if any).
		if result.Confirmation == "" {
			return h.bot.SendMessage(msg.Chat.ID, "I'm not sure what to do with that. Try /help for examples.")
		}
		return nil
	}

	reply := out.Message
	if out.Record.URL != "" {
		reply += fmt.Sprintf("\n📝 [Open](%s)", out.Record.URL)
	}
	if out.EventURL != "" {
		reply += fmt.Sprintf("\n📅 [Calendar](%s)", out.EventURL)
	}

	return h.bot.SendMessageWithMode(msg.Chat.ID, reply, "Markdown")
}
