package usecase

import (
	"context"
	"strings"

	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
)

// ProcessQuery runs the full interpretation pipeline for one utterance.
// Malformed model output never escapes as an error: it degrades the result
// and is reported through the Degraded fields. An error return means the
// model service itself was unreachable.
func (uc *implUseCase) ProcessQuery(ctx context.Context, sc model.Scope, ip interpreter.ProcessInput) (*interpreter.CommandResult, error) {
	uc.processing.Store(true)
	defer uc.processing.Store(false)

	original := ip.Query
	if strings.TrimSpace(original) == "" {
		return nil, interpreter.ErrEmptyQuery
	}

	intent, text, matched := interpreter.ParseMention(original)
	if !matched {
		classified, err := uc.classify(ctx, text)
		if err != nil {
			uc.l.Errorf(ctx, "interpreter.ProcessQuery: classification failed for user %s: %v", sc.UserID, err)
			return nil, err
		}
		intent = classified
	}

	uc.l.Infof(ctx, "interpreter.ProcessQuery: intent=%s mention=%t user=%s", intent, matched, sc.UserID)

	extraction, err := uc.extract(ctx, intent, text)
	if err != nil {
		uc.l.Errorf(ctx, "interpreter.ProcessQuery: extraction failed for intent %s: %v", intent, err)
		return nil, err
	}

	if extraction.Degraded {
		uc.l.Warnf(ctx, "interpreter.ProcessQuery: degraded extraction for intent %s: %s", intent, extraction.Reason)
	}

	return &interpreter.CommandResult{
		Intent:         intent,
		Params:         extraction.Params,
		Confirmation:   uc.confirm(intent, extraction),
		OriginalQuery:  original,
		Degraded:       extraction.Degraded,
		DegradedReason: extraction.Reason,
	}, nil
}

// IsProcessing reports whether a ProcessQuery call is currently in flight.
func (uc *implUseCase) IsProcessing() bool {
	return uc.processing.Load()
}
