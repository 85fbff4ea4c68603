package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
	"lifehub-assistant/pkg/datemath"
)

var testScope = model.Scope{UserID: "user-1", Username: "tester"}

func expectedDueDate(t *testing.T) string {
	t.Helper()
	parser, _ := datemath.NewParser("UTC")
	due, err := parser.Parse("in 7 days", time.Now())
	if err != nil {
		t.Fatalf("parse due date: %v", err)
	}
	return due.Format("2006-01-02")
}

func TestProcessQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("task mention skips classification and forces due date", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"title": "Buy groceries", "description": "Weekly shopping run.", "priority": "medium"}`,
		}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "@task Buy groceries tomorrow"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if result.Intent != interpreter.IntentCreateTask {
			t.Errorf("intent = %s, want create_task", result.Intent)
		}
		if len(gen.prompts) != 1 {
			t.Errorf("model calls = %d, want 1 (no classification, no backfill)", len(gen.prompts))
		}

		due := expectedDueDate(t)
		if result.Params.GetString("due_date") != due {
			t.Errorf("due_date = %q, want %q", result.Params.GetString("due_date"), due)
		}
		if !strings.Contains(result.Confirmation, "Buy groceries") || !strings.Contains(result.Confirmation, due) {
			t.Errorf("confirmation %q should mention title and due date", result.Confirmation)
		}
		if result.OriginalQuery != "@task Buy groceries tomorrow" {
			t.Errorf("original query = %q", result.OriginalQuery)
		}
	})

	t.Run("due date ignores model output", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"title": "Buy groceries", "description": "x", "due_date": "1999-01-01"}`,
		}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "@task Buy groceries by 1999"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if result.Params.GetString("due_date") != expectedDueDate(t) {
			t.Errorf("due_date = %q, model must not control it", result.Params.GetString("due_date"))
		}
	})

	t.Run("goal mention with add keyword is contribution", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			`{"goal_name": "Vacation", "amount": 5000}`,
		}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "@goal add 5000 to vacation"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if result.Intent != interpreter.IntentContributeGoal {
			t.Errorf("intent = %s, want contribute_goal", result.Intent)
		}
		if n, _ := result.Params.GetNumber("amount"); n != 5000 {
			t.Errorf("amount = %v, want 5000", n)
		}
	})

	t.Run("no mention goes through classification", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			"create_transaction",
			`{"amount": 25, "description": "lunch", "type": "expense", "category": "food"}`,
		}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "I spent 25 on lunch today"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if result.Intent != interpreter.IntentCreateTransaction {
			t.Errorf("intent = %s, want create_transaction", result.Intent)
		}
		if len(gen.prompts) != 2 {
			t.Fatalf("model calls = %d, want 2 (classify then extract)", len(gen.prompts))
		}
		if !strings.Contains(gen.prompts[0], "Allowed intents") {
			t.Errorf("first call should be the classification prompt")
		}
		if n, _ := result.Params.GetNumber("amount"); n != 25 {
			t.Errorf("amount = %v, want 25", n)
		}
	})

	t.Run("unrecognized classifier token falls back to conversation", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{"make_me_a_sandwich"}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "sudo make me a sandwich"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if result.Intent != interpreter.IntentConversation {
			t.Errorf("intent = %s, want conversation", result.Intent)
		}
		if len(gen.prompts) != 1 {
			t.Errorf("model calls = %d, conversation needs no extraction", len(gen.prompts))
		}
		if result.Confirmation != "" {
			t.Errorf("confirmation = %q, want empty", result.Confirmation)
		}
	})

	t.Run("account without a name stays unnamed", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{
			"create_account",
			`{"name": null, "type": "bank", "balance": 50000}`,
		}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "create account with 50000 balance"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if !result.Params.IsNull("name") {
			t.Errorf("name = %v, want explicit null", result.Params["name"])
		}
		if result.Degraded {
			t.Error("an unnamed account is not a degraded extraction")
		}
		if !strings.Contains(result.Confirmation, "new bank account") {
			t.Errorf("confirmation %q should use the generic phrasing", result.Confirmation)
		}
	})

	t.Run("note takes content verbatim without model calls", func(t *testing.T) {
		gen := &mockGenerator{}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "@note the wifi password is on the fridge"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if len(gen.prompts) != 0 {
			t.Errorf("model calls = %d, want 0", len(gen.prompts))
		}
		if result.Params.GetString("content") != "the wifi password is on the fridge" {
			t.Errorf("content = %q", result.Params.GetString("content"))
		}
	})

	t.Run("unparseable extraction degrades instead of failing", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{"I'm sorry, I cannot do that"}}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "@budget 400 a month for groceries"})
		if err != nil {
			t.Fatalf("ProcessQuery() error = %v, degraded results must not error", err)
		}
		if !result.Degraded {
			t.Fatal("result should be degraded")
		}
		if result.Params.GetString("category") != "400 a month for groceries" {
			t.Errorf("fallback category = %q, want the raw utterance", result.Params.GetString("category"))
		}
		if result.Confirmation == "" {
			t.Error("degraded results still get a generic confirmation")
		}
	})

	t.Run("classification failure returns nil and error", func(t *testing.T) {
		gen := &mockGenerator{err: errors.New("model service down")}
		uc := newTestUseCase(gen)

		result, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "I spent 25 on lunch"})
		if err == nil {
			t.Fatal("ProcessQuery() should propagate model service failures")
		}
		if result != nil {
			t.Errorf("result = %+v, want nil", result)
		}
		if uc.IsProcessing() {
			t.Error("processing flag must be cleared on the error path")
		}
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		uc := newTestUseCase(&mockGenerator{})
		if _, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "   "}); !errors.Is(err, interpreter.ErrEmptyQuery) {
			t.Errorf("error = %v, want ErrEmptyQuery", err)
		}
	})

	t.Run("processing flag is false around calls", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"goal_name": "x", "amount": 1}`}}
		uc := newTestUseCase(gen)

		if uc.IsProcessing() {
			t.Error("processing should start false")
		}
		if _, err := uc.ProcessQuery(ctx, testScope, interpreter.ProcessInput{Query: "@goal add 1 to x"}); err != nil {
			t.Fatalf("ProcessQuery() error = %v", err)
		}
		if uc.IsProcessing() {
			t.Error("processing should be false after a successful call")
		}
	})
}
