package interpreter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FieldType restricts what a schema field may decode to.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
)

// Field describes one parameter slot of an intent.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Nullable fields keep an explicit JSON null in the decoded params.
	// A null is a real answer from the model ("the user named nothing"),
	// distinct from the field being absent.
	Nullable bool
	Hint     string // short description shown next to the field in the prompt
}

// Example is one worked input/output pair embedded in the extraction prompt.
type Example struct {
	Input  string
	Output string
}

// Schema is the structured-extraction contract of a single intent. The
// prompt sent to the model and the defensive decoder are both generated
// from it, so the instructions and the validation can never disagree.
type Schema struct {
	Fields   []Field
	Rules    []string
	Examples []Example
}

// Prompt renders the extraction instruction for the given utterance.
func (s *Schema) Prompt(text string) string {
	var b strings.Builder

	b.WriteString("You extract structured parameters from a personal assistant command.\n\n")
	b.WriteString("Return ONLY a JSON object with this exact shape:\n{\n")
	for _, f := range s.Fields {
		typ := string(f.Type)
		if f.Nullable {
			typ += "|null"
		}
		b.WriteString(fmt.Sprintf("  %q: %s", f.Name, typ))
		if f.Hint != "" {
			b.WriteString("  // " + f.Hint)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\nRules:\n")
	b.WriteString("- Omit any field you cannot determine from the input. Never invent a value.\n")
	b.WriteString("- Return raw JSON only: no markdown, no code fences, no commentary.\n")
	for _, r := range s.Rules {
		b.WriteString("- " + r + "\n")
	}

	for _, ex := range s.Examples {
		b.WriteString(fmt.Sprintf("\nEXAMPLE INPUT: %s\nEXAMPLE OUTPUT: %s\n", ex.Input, ex.Output))
	}

	b.WriteString("\nNow extract from this input and return ONLY the JSON object:\n")
	b.WriteString(text)

	return b.String()
}

// Decode parses a model response against the schema. Unknown keys are
// dropped, values are coerced to the declared field type, and a JSON null
// survives only on fields declared Nullable. Decode errors mean the
// response was not usable JSON at all; field-level type mismatches just
// drop the field.
func (s *Schema) Decode(raw string) (Params, error) {
	cleaned := sanitizeJSONResponse(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal extraction response: %w", err)
	}

	params := Params{}
	for _, f := range s.Fields {
		val, ok := decoded[f.Name]
		if !ok {
			continue
		}
		if val == nil {
			if f.Nullable {
				params[f.Name] = nil
			}
			continue
		}
		switch f.Type {
		case FieldNumber:
			if n, ok := coerceNumber(val); ok {
				params[f.Name] = n
			}
		default:
			if str, ok := coerceString(val); ok && str != "" {
				params[f.Name] = str
			}
		}
	}

	return params, nil
}

// MissingRequired reports required fields the decoded params lack. A
// nullable field holding an explicit null counts as present.
func (s *Schema) MissingRequired(p Params) []string {
	var missing []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if _, ok := p[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func coerceNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func coerceString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

var (
	codeFenceStart = regexp.MustCompile("(?i)```(?:json)?")
)

// sanitizeJSONResponse strips markdown fences and any prose around the
// first JSON object in a model response. Models wrap JSON in code fences
// or preamble text often enough that parsing the raw string directly is
// not viable.
func sanitizeJSONResponse(raw string) string {
	cleaned := codeFenceStart.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}

	return cleaned[start : end+1]
}

var taskSchema = &Schema{
	Fields: []Field{
		{Name: "title", Type: FieldString, Required: true, Hint: "short imperative task title"},
		{Name: "description", Type: FieldString, Hint: "one or two sentences of detail, if stated"},
		{Name: "priority", Type: FieldString, Hint: "one of: low, medium, high"},
	},
	Rules: []string{
		"Never include a due date, deadline, or any date field. Scheduling is handled elsewhere.",
	},
	Examples: []Example{
		{
			Input:  "remind me to renew my passport, it expires soon so this is urgent",
			Output: `{"title": "Renew passport", "description": "Passport is expiring soon.", "priority": "high"}`,
		},
		{
			Input:  "buy groceries tomorrow",
			Output: `{"title": "Buy groceries"}`,
		},
	},
}

var transactionSchema = &Schema{
	Fields: []Field{
		{Name: "amount", Type: FieldNumber, Required: true, Hint: "positive number, no currency symbol"},
		{Name: "description", Type: FieldString, Required: true, Hint: "what the money was for"},
		{Name: "type", Type: FieldString, Required: true, Hint: "expense or income"},
		{Name: "category", Type: FieldString, Hint: "best-effort spending category, e.g. food, transport"},
	},
	Examples: []Example{
		{
			Input:  "I spent 25 on lunch today",
			Output: `{"amount": 25, "description": "lunch", "type": "expense", "category": "food"}`,
		},
		{
			Input:  "got paid 3000 salary",
			Output: `{"amount": 3000, "description": "salary", "type": "income"}`,
		},
	},
}

var recurringSchema = &Schema{
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true, Hint: "what the payment is for"},
		{Name: "amount", Type: FieldNumber, Required: true},
		{Name: "frequency", Type: FieldString, Hint: "one of: weekly, monthly, yearly"},
		{Name: "due_day", Type: FieldNumber, Hint: "day of month the payment is due, if stated"},
		{Name: "category", Type: FieldString, Hint: "best-effort spending category"},
	},
	Examples: []Example{
		{
			Input:  "add my 12.99 netflix subscription billed monthly on the 5th",
			Output: `{"name": "Netflix", "amount": 12.99, "frequency": "monthly", "due_day": 5, "category": "entertainment"}`,
		},
		{
			Input:  "yearly domain renewal, 15 bucks",
			Output: `{"name": "Domain renewal", "amount": 15, "frequency": "yearly"}`,
		},
	},
}

var budgetSchema = &Schema{
	Fields: []Field{
		{Name: "category", Type: FieldString, Required: true, Hint: "spending category the budget applies to"},
		{Name: "amount", Type: FieldNumber, Required: true},
		{Name: "period", Type: FieldString, Hint: "one of: weekly, monthly, yearly; default monthly"},
	},
	Examples: []Example{
		{
			Input:  "set a 400 monthly budget for groceries",
			Output: `{"category": "groceries", "amount": 400, "period": "monthly"}`,
		},
	},
}

var categorySchema = &Schema{
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "type", Type: FieldString, Hint: "expense or income; default expense"},
	},
	Examples: []Example{
		{
			Input:  "create a new expense category called pets",
			Output: `{"name": "pets", "type": "expense"}`,
		},
	},
}

var accountSchema = &Schema{
	Fields: []Field{
		{Name: "name", Type: FieldString, Nullable: true, Hint: "account name, or null when the user names none"},
		{Name: "type", Type: FieldString, Hint: "one of: bank, cash, credit, investment; default bank"},
		{Name: "balance", Type: FieldNumber, Hint: "opening balance, if stated"},
	},
	Rules: []string{
		`When the user does not name the account, return "name": null instead of inventing a name.`,
	},
	Examples: []Example{
		{
			Input:  "create account with 50000 balance",
			Output: `{"name": null, "type": "bank", "balance": 50000}`,
		},
		{
			Input:  "add my revolut card",
			Output: `{"name": "Revolut", "type": "credit"}`,
		},
	},
}

var goalSchema = &Schema{
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true, Hint: "what the user is saving for"},
		{Name: "target_amount", Type: FieldNumber, Hint: "target amount, if stated"},
	},
	Examples: []Example{
		{
			Input:  "I want to save 3000 for a vacation",
			Output: `{"name": "Vacation", "target_amount": 3000}`,
		},
		{
			Input:  "new savings goal: emergency fund",
			Output: `{"name": "Emergency fund"}`,
		},
	},
}

var goalContributionSchema = &Schema{
	Fields: []Field{
		{Name: "goal_name", Type: FieldString, Required: true},
		{Name: "amount", Type: FieldNumber, Required: true},
	},
	Examples: []Example{
		{
			Input:  "add 500 to my vacation fund",
			Output: `{"goal_name": "Vacation", "amount": 500}`,
		},
	},
}

var liabilitySchema = &Schema{
	Fields: []Field{
		{Name: "name", Type: FieldString, Required: true, Hint: "what is owed"},
		{Name: "amount", Type: FieldNumber, Required: true, Hint: "outstanding amount"},
		{Name: "type", Type: FieldString, Hint: "loan, credit_card, mortgage, or a free-text label from the user"},
	},
	Examples: []Example{
		{
			Input:  "I owe 8000 on my car loan",
			Output: `{"name": "Car loan", "amount": 8000, "type": "loan"}`,
		},
		{
			Input:  "track the 300 I owe my brother",
			Output: `{"name": "Owed to brother", "amount": 300, "type": "personal"}`,
		},
	},
}

var transferSchema = &Schema{
	Fields: []Field{
		{Name: "amount", Type: FieldNumber, Required: true},
		{Name: "from_account", Type: FieldString, Hint: "source account, if stated"},
		{Name: "to_account", Type: FieldString, Hint: "destination account, if stated"},
	},
	Examples: []Example{
		{
			Input:  "move 200 from checking to savings",
			Output: `{"amount": 200, "from_account": "checking", "to_account": "savings"}`,
		},
		{
			Input:  "transfer 50 to my vacation account",
			Output: `{"amount": 50, "to_account": "vacation"}`,
		},
	},
}

var credentialSchema = &Schema{
	Fields: []Field{
		{Name: "service", Type: FieldString, Required: true, Hint: "what the login is for"},
		{Name: "username", Type: FieldString, Hint: "username or email, if stated"},
		{Name: "notes", Type: FieldString, Hint: "any extra detail, if stated"},
	},
	Rules: []string{
		"Never extract or echo a password, even when one appears in the input.",
	},
	Examples: []Example{
		{
			Input:  "save my github login, username octocat",
			Output: `{"service": "GitHub", "username": "octocat"}`,
		},
	},
}
