package usecase

import (
	"context"
	"strings"
	"testing"

	"lifehub-assistant/internal/interpreter"
)

func TestExtractTask(t *testing.T) {
	ctx := context.Background()

	t.Run("missing description triggers backfill call", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"title": "Buy milk"}`,
			"Pick up milk on the way home.",
		}}
		uc := newTestUseCase(gen)

		ext, err := uc.extractTask(ctx, "buy milk")
		if err != nil {
			t.Fatalf("extractTask() error = %v", err)
		}
		if len(gen.prompts) != 2 {
			t.Fatalf("model calls = %d, want 2", len(gen.prompts))
		}
		if !strings.Contains(gen.prompts[1], "Buy milk") {
			t.Errorf("backfill prompt should reference the title, got %q", gen.prompts[1])
		}
		if ext.Params.GetString("description") != "Pick up milk on the way home." {
			t.Errorf("description = %q", ext.Params.GetString("description"))
		}
	})

	t.Run("present description skips backfill", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"title": "Buy milk", "description": "From the corner shop."}`,
		}}
		uc := newTestUseCase(gen)

		if _, err := uc.extractTask(ctx, "buy milk from the corner shop"); err != nil {
			t.Fatalf("extractTask() error = %v", err)
		}
		if len(gen.prompts) != 1 {
			t.Errorf("model calls = %d, want 1", len(gen.prompts))
		}
	})

	t.Run("backfill failure falls back to title", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"title": "Buy milk"}`,
			"",
		}}
		uc := newTestUseCase(gen)

		ext, err := uc.extractTask(ctx, "buy milk")
		if err != nil {
			t.Fatalf("extractTask() error = %v, backfill failures are non-fatal", err)
		}
		if ext.Params.GetString("description") != "Buy milk" {
			t.Errorf("description = %q, want the title fallback", ext.Params.GetString("description"))
		}
	})

	t.Run("degraded extraction still carries due date", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{"not json at all"}}
		uc := newTestUseCase(gen)

		ext, err := uc.extractTask(ctx, "buy milk")
		if err != nil {
			t.Fatalf("extractTask() error = %v", err)
		}
		if !ext.Degraded {
			t.Fatal("extraction should be degraded")
		}
		if ext.Params.GetString("title") != "buy milk" {
			t.Errorf("title = %q, want raw utterance", ext.Params.GetString("title"))
		}
		if ext.Params.GetString("due_date") == "" {
			t.Error("due_date must be set even on the degraded path")
		}
		if len(gen.prompts) != 1 {
			t.Errorf("model calls = %d, degraded extraction must not backfill", len(gen.prompts))
		}
	})
}

func TestExtractDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("account type defaults to bank", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"name": "Revolut"}`}}
		uc := newTestUseCase(gen)

		ext, err := uc.extract(ctx, interpreter.IntentCreateAccount, "add my revolut")
		if err != nil {
			t.Fatalf("extract() error = %v", err)
		}
		if ext.Params.GetString("type") != "bank" {
			t.Errorf("type = %q, want bank", ext.Params.GetString("type"))
		}
	})

	t.Run("budget period defaults to monthly", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"category": "groceries", "amount": 400}`}}
		uc := newTestUseCase(gen)

		ext, err := uc.extract(ctx, interpreter.IntentCreateBudget, "400 for groceries")
		if err != nil {
			t.Fatalf("extract() error = %v", err)
		}
		if ext.Params.GetString("period") != "monthly" {
			t.Errorf("period = %q, want monthly", ext.Params.GetString("period"))
		}
	})
}

func TestExtractMissingRequired(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback field absorbs the utterance", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"amount": 12.99}`}}
		uc := newTestUseCase(gen)

		ext, err := uc.extract(ctx, interpreter.IntentCreateRecurring, "12.99 subscription")
		if err != nil {
			t.Fatalf("extract() error = %v", err)
		}
		if ext.Params.GetString("name") != "12.99 subscription" {
			t.Errorf("name = %q, want raw utterance", ext.Params.GetString("name"))
		}
		if ext.Degraded {
			t.Error("all required fields are present after the fallback merge")
		}
	})

	t.Run("unfillable required field degrades", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"goal_name": "Vacation"}`}}
		uc := newTestUseCase(gen)

		ext, err := uc.extract(ctx, interpreter.IntentContributeGoal, "put money in vacation")
		if err != nil {
			t.Fatalf("extract() error = %v", err)
		}
		if !ext.Degraded {
			t.Error("missing amount cannot be synthesized, extraction should degrade")
		}
		if !strings.Contains(ext.Reason, "amount") {
			t.Errorf("reason = %q, should name the missing field", ext.Reason)
		}
	})

	t.Run("round trip merges model output with defaults", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"amount": 200, "from_account": "checking", "to_account": "savings"}`,
		}}
		uc := newTestUseCase(gen)

		ext, err := uc.extract(ctx, interpreter.IntentTransferFunds, "move 200 from checking to savings")
		if err != nil {
			t.Fatalf("extract() error = %v", err)
		}
		if n, _ := ext.Params.GetNumber("amount"); n != 200 {
			t.Errorf("amount = %v, want 200", n)
		}
		if ext.Params.GetString("from_account") != "checking" || ext.Params.GetString("to_account") != "savings" {
			t.Errorf("accounts = %q -> %q", ext.Params.GetString("from_account"), ext.Params.GetString("to_account"))
		}
	})
}
