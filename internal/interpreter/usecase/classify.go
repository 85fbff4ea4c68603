package usecase

import (
	"context"
	"fmt"
	"strings"

	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/pkg/llmprovider"
)

const classifyTemperature = 0.1

// buildClassifyPrompt enumerates the allowed intents with one example each.
// The list is generated from the intent registry so the vocabulary the
// model sees always matches the set the code branches on.
func buildClassifyPrompt(query string) string {
	var b strings.Builder

	b.WriteString("You classify a personal assistant command into exactly one intent.\n\n")
	b.WriteString("Allowed intents:\n")
	for _, intent := range interpreter.AllIntents() {
		spec, _ := interpreter.SpecFor(intent)
		b.WriteString(fmt.Sprintf("- %s (e.g. %q)\n", intent, spec.Example))
	}
	b.WriteString("\nRespond with the intent name only: one lowercase token, no punctuation, no explanation.\n\n")
	b.WriteString("Input: " + query)

	return b.String()
}

// classify asks the model for a single intent token. Any answer outside
// the closed set resolves to the conversational catch-all; only a failed
// model call returns an error.
func (uc *implUseCase) classify(ctx context.Context, query string) (interpreter.Intent, error) {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: buildClassifyPrompt(query)}},
			},
		},
		Temperature: classifyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("classify intent: %w", err)
	}

	token := firstText(resp)
	if token == "" {
		uc.l.Warnf(ctx, "interpreter.classify: empty model response, falling back to conversation")
		return interpreter.IntentConversation, nil
	}

	return interpreter.ParseIntent(token), nil
}

// firstText pulls the first text part out of a provider response.
func firstText(resp *llmprovider.Response) string {
	if resp == nil {
		return ""
	}
	for _, part := range resp.Content.Parts {
		if part.Text != "" {
			return strings.TrimSpace(part.Text)
		}
	}
	return ""
}
