package interpreter

import (
	"strings"
	"testing"
)

func TestSchemaDecode(t *testing.T) {
	t.Run("plain JSON object", func(t *testing.T) {
		params, err := transactionSchema.Decode(`{"amount": 25, "description": "lunch", "type": "expense", "category": "food"}`)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if n, _ := params.GetNumber("amount"); n != 25 {
			t.Errorf("amount = %v, want 25", n)
		}
		if params.GetString("description") != "lunch" {
			t.Errorf("description = %q, want %q", params.GetString("description"), "lunch")
		}
	})

	t.Run("code fences stripped", func(t *testing.T) {
		raw := "```json\n{\"title\": \"Buy milk\"}\n```"
		params, err := taskSchema.Decode(raw)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if params.GetString("title") != "Buy milk" {
			t.Errorf("title = %q, want %q", params.GetString("title"), "Buy milk")
		}
	})

	t.Run("prose around JSON ignored", func(t *testing.T) {
		raw := `Here is the extraction: {"title": "Renew passport", "priority": "high"} Hope that helps!`
		params, err := taskSchema.Decode(raw)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if params.GetString("priority") != "high" {
			t.Errorf("priority = %q, want %q", params.GetString("priority"), "high")
		}
	})

	t.Run("explicit null survives on nullable field", func(t *testing.T) {
		params, err := accountSchema.Decode(`{"name": null, "type": "bank", "balance": 50000}`)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !params.IsNull("name") {
			t.Errorf("name should be an explicit null, got %v", params["name"])
		}
		if n, _ := params.GetNumber("balance"); n != 50000 {
			t.Errorf("balance = %v, want 50000", n)
		}
	})

	t.Run("null dropped on non-nullable field", func(t *testing.T) {
		params, err := taskSchema.Decode(`{"title": "x", "description": null}`)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if _, ok := params["description"]; ok {
			t.Errorf("description should be absent, got %v", params["description"])
		}
	})

	t.Run("numeric string coerced", func(t *testing.T) {
		params, err := transactionSchema.Decode(`{"amount": "25.50", "description": "lunch", "type": "expense"}`)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if n, _ := params.GetNumber("amount"); n != 25.5 {
			t.Errorf("amount = %v, want 25.5", n)
		}
	})

	t.Run("unknown keys dropped", func(t *testing.T) {
		params, err := taskSchema.Decode(`{"title": "x", "due_date": "2030-01-01", "hallucinated": true}`)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if _, ok := params["due_date"]; ok {
			t.Error("due_date should never come from the model")
		}
		if _, ok := params["hallucinated"]; ok {
			t.Error("unknown keys should be dropped")
		}
	})

	t.Run("non-JSON response fails", func(t *testing.T) {
		if _, err := taskSchema.Decode("sorry, I can't help with that"); err == nil {
			t.Error("Decode() should fail on a response with no JSON object")
		}
	})

	t.Run("malformed JSON fails", func(t *testing.T) {
		if _, err := taskSchema.Decode(`{"title": "x"`); err == nil {
			t.Error("Decode() should fail on truncated JSON")
		}
	})
}

func TestSchemaMissingRequired(t *testing.T) {
	params, err := transactionSchema.Decode(`{"description": "lunch"}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	missing := transactionSchema.MissingRequired(params)
	if len(missing) != 2 {
		t.Fatalf("MissingRequired() = %v, want amount and type", missing)
	}

	t.Run("explicit null counts as present", func(t *testing.T) {
		params, err := accountSchema.Decode(`{"name": null}`)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if missing := accountSchema.MissingRequired(params); len(missing) != 0 {
			t.Errorf("MissingRequired() = %v, want none", missing)
		}
	})
}

func TestSchemaPrompt(t *testing.T) {
	prompt := taskSchema.Prompt("buy milk")

	for _, want := range []string{`"title"`, `"description"`, `"priority"`, "EXAMPLE INPUT", "buy milk"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt() missing %q", want)
		}
	}

	if !strings.Contains(prompt, "Never include a due date") {
		t.Error("task prompt must forbid due dates")
	}
}

func TestRegistry(t *testing.T) {
	t.Run("every intent has a spec", func(t *testing.T) {
		for _, intent := range AllIntents() {
			if _, ok := SpecFor(intent); !ok {
				t.Errorf("SpecFor(%s) not found", intent)
			}
		}
	})

	t.Run("fallback keys exist in their schemas", func(t *testing.T) {
		for _, intent := range AllIntents() {
			spec, _ := SpecFor(intent)
			if spec.Fallback == "" || spec.Schema == nil {
				continue
			}
			found := false
			for _, f := range spec.Schema.Fields {
				if f.Name == spec.Fallback {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("intent %s: fallback key %q not in schema", intent, spec.Fallback)
			}
		}
	})
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		token string
		want  Intent
	}{
		{"create_task", IntentCreateTask},
		{"  Create_Transaction  ", IntentCreateTransaction},
		{"unknown", IntentUnknown},
		{"make_me_a_sandwich", IntentConversation},
		{"", IntentConversation},
	}

	for _, tt := range tests {
		if got := ParseIntent(tt.token); got != tt.want {
			t.Errorf("ParseIntent(%q) = %s, want %s", tt.token, got, tt.want)
		}
	}
}
