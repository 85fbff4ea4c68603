package usecase

import (
	"context"

	"lifehub-assistant/pkg/datemath"
	"lifehub-assistant/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// mockGenerator replays queued text responses and records every prompt it
// receives, so tests can assert on call counts and prompt contents.
type mockGenerator struct {
	responses []string
	err       error
	prompts   []string
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	prompt := ""
	if len(req.Messages) > 0 && len(req.Messages[0].Parts) > 0 {
		prompt = req.Messages[0].Parts[0].Text
	}
	m.prompts = append(m.prompts, prompt)

	if m.err != nil {
		return nil, m.err
	}

	idx := len(m.prompts) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	if idx < 0 {
		return &llmprovider.Response{}, nil
	}

	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: m.responses[idx]}},
		},
		ProviderName: "mock",
		ModelName:    "mock-model",
	}, nil
}

func newTestUseCase(gen *mockGenerator) *implUseCase {
	parser, _ := datemath.NewParser("UTC")
	return New(&mockLogger{}, gen, parser)
}
