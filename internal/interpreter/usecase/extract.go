package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/pkg/llmprovider"
)

const extractTemperature = 0.2

// extract dispatches to the slot extractor for an intent. Intents without
// a schema never touch the model: notes and journal entries take the
// utterance verbatim, search passes it through as the query, and the
// conversational intents carry no parameters at all.
func (uc *implUseCase) extract(ctx context.Context, intent interpreter.Intent, text string) (interpreter.Extraction, error) {
	switch intent {
	case interpreter.IntentCreateNote, interpreter.IntentCreateJournal:
		return interpreter.Extraction{Params: interpreter.Params{"content": text}}, nil
	case interpreter.IntentSearchKnowledge:
		return interpreter.Extraction{Params: interpreter.Params{"query": text}}, nil
	case interpreter.IntentConversation, interpreter.IntentUnknown:
		return interpreter.Extraction{Params: interpreter.Params{}}, nil
	case interpreter.IntentCreateTask:
		return uc.extractTask(ctx, text)
	}

	spec, ok := interpreter.SpecFor(intent)
	if !ok || spec.Schema == nil {
		return interpreter.Extraction{Params: interpreter.Params{}}, nil
	}

	ext, err := uc.extractWithSchema(ctx, spec, text)
	if err != nil {
		return interpreter.Extraction{}, err
	}

	applyDefaults(intent, ext.Params)
	return ext, nil
}

// extractWithSchema runs one model-backed extraction. A failed model call
// is the only error path; an unparseable or incomplete response degrades
// into a minimal params bag built from the raw utterance.
func (uc *implUseCase) extractWithSchema(ctx context.Context, spec interpreter.IntentSpec, text string) (interpreter.Extraction, error) {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: spec.Schema.Prompt(text)}},
			},
		},
		Temperature: extractTemperature,
	})
	if err != nil {
		return interpreter.Extraction{}, fmt.Errorf("extract %s params: %w", spec.Intent, err)
	}

	params, decodeErr := spec.Schema.Decode(firstText(resp))
	if decodeErr != nil {
		uc.l.Warnf(ctx, "interpreter.extract: unparseable response for %s: %v", spec.Intent, decodeErr)
		return interpreter.Extraction{
			Params:   fallbackParams(spec, text),
			Degraded: true,
			Reason:   decodeErr.Error(),
		}, nil
	}

	if missing := spec.Schema.MissingRequired(params); len(missing) > 0 {
		if spec.Fallback != "" {
			if _, ok := params[spec.Fallback]; !ok {
				params[spec.Fallback] = text
			}
		}
		if remaining := spec.Schema.MissingRequired(params); len(remaining) > 0 {
			return interpreter.Extraction{
				Params:   params,
				Degraded: true,
				Reason:   "missing required fields: " + strings.Join(remaining, ", "),
			}, nil
		}
	}

	return interpreter.Extraction{Params: params}, nil
}

// extractTask is a two-stage pipeline. The first call extracts title,
// description, and priority; the due date is never model-controlled and is
// always forced to a week out. When the model gives no description, a
// second call synthesizes one from the title, and that call failing just
// falls back to the title rather than aborting the task.
func (uc *implUseCase) extractTask(ctx context.Context, text string) (interpreter.Extraction, error) {
	spec, _ := interpreter.SpecFor(interpreter.IntentCreateTask)

	ext, err := uc.extractWithSchema(ctx, spec, text)
	if err != nil {
		return interpreter.Extraction{}, err
	}

	ext.Params["due_date"] = uc.dueDateInAWeek()

	if ext.Degraded {
		return ext, nil
	}

	if ext.Params.GetString("description") == "" {
		title := ext.Params.GetString("title")
		description, err := uc.generateTaskDescription(ctx, title)
		if err != nil {
			uc.l.Warnf(ctx, "interpreter.extractTask: description backfill failed: %v", err)
			description = title
		}
		ext.Params["description"] = description
	}

	return ext, nil
}

// generateTaskDescription issues the dependent second model call of the
// task pipeline.
func (uc *implUseCase) generateTaskDescription(ctx context.Context, title string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a one or two sentence task description for the task titled %q. "+
			"Respond with the description only, no quotes, no preamble.", title)

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: prompt}},
			},
		},
		Temperature: extractTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate task description: %w", err)
	}

	description := firstText(resp)
	if description == "" {
		return "", fmt.Errorf("empty description response")
	}

	return description, nil
}

// dueDateInAWeek returns the forced task due date, a week from now in the
// configured timezone.
func (uc *implUseCase) dueDateInAWeek() string {
	now := time.Now()
	due, err := uc.dateMath.Parse("in 7 days", now)
	if err != nil {
		due = now.AddDate(0, 0, 7)
	}
	return due.Format("2006-01-02")
}

// fallbackParams builds the minimal degraded-path params bag: the raw
// utterance lands in the intent's designated field when it has one.
func fallbackParams(spec interpreter.IntentSpec, text string) interpreter.Params {
	params := interpreter.Params{}
	if spec.Fallback != "" {
		params[spec.Fallback] = text
	}
	applyDefaults(spec.Intent, params)
	return params
}

// applyDefaults fills the product-policy defaults that hold whether or not
// the model mentioned the field.
func applyDefaults(intent interpreter.Intent, params interpreter.Params) {
	switch intent {
	case interpreter.IntentCreateAccount:
		if params.GetString("type") == "" {
			params["type"] = "bank"
		}
	case interpreter.IntentCreateBudget:
		if params.GetString("period") == "" {
			params["period"] = "monthly"
		}
	case interpreter.IntentCreateCategory:
		if params.GetString("type") == "" {
			params["type"] = "expense"
		}
	}
}
