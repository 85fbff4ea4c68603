package interpreter

import "strings"

// Intent is the classified action a user utterance maps to. The set is
// closed: downstream code only ever branches on members of this enum, never
// on a raw model string.
type Intent string

const (
	IntentCreateTask        Intent = "create_task"
	IntentCreateNote        Intent = "create_note"
	IntentCreateJournal     Intent = "create_journal"
	IntentCreateTransaction Intent = "create_transaction"
	IntentCreateRecurring   Intent = "create_recurring"
	IntentCreateBudget      Intent = "create_budget"
	IntentCreateCategory    Intent = "create_category"
	IntentCreateAccount     Intent = "create_account"
	IntentCreateGoal        Intent = "create_goal"
	IntentContributeGoal    Intent = "contribute_goal"
	IntentCreateLiability   Intent = "create_liability"
	IntentTransferFunds     Intent = "transfer_funds"
	IntentCreateCredential  Intent = "create_credential"
	IntentSearchKnowledge   Intent = "search_knowledge"
	IntentConversation      Intent = "conversation"
	IntentUnknown           Intent = "unknown"
)

// IntentSpec binds everything intent-specific in one place: the classifier
// example, the extraction schema (nil for intents that never call the
// model), and the field that receives the raw utterance when extraction
// degrades. The classifier prompt and the extractor dispatch are both
// generated from this registry so the model-facing vocabulary and the
// code-facing branching cannot drift apart.
type IntentSpec struct {
	Intent   Intent
	Example  string  // one illustrative utterance for the classifier prompt
	Schema   *Schema // nil = no model-backed extraction
	Fallback string  // params key that receives the raw text on degraded extraction
}

var registry = []IntentSpec{
	{
		Intent:   IntentCreateTask,
		Example:  "remind me to renew my passport",
		Schema:   taskSchema,
		Fallback: "title",
	},
	{
		Intent:  IntentCreateNote,
		Example: "note that the wifi password is on the fridge",
	},
	{
		Intent:  IntentCreateJournal,
		Example: "today was a good day, I finally finished the garden",
	},
	{
		Intent:   IntentCreateTransaction,
		Example:  "I spent 25 on lunch today",
		Schema:   transactionSchema,
		Fallback: "description",
	},
	{
		Intent:   IntentCreateRecurring,
		Example:  "add my 12.99 netflix subscription billed monthly",
		Schema:   recurringSchema,
		Fallback: "name",
	},
	{
		Intent:   IntentCreateBudget,
		Example:  "set a 400 monthly budget for groceries",
		Schema:   budgetSchema,
		Fallback: "category",
	},
	{
		Intent:   IntentCreateCategory,
		Example:  "create a new expense category called pets",
		Schema:   categorySchema,
		Fallback: "name",
	},
	{
		Intent:  IntentCreateAccount,
		Example: "create a checking account with 50000 balance",
		Schema:  accountSchema,
	},
	{
		Intent:   IntentCreateGoal,
		Example:  "I want to save 3000 for a vacation",
		Schema:   goalSchema,
		Fallback: "name",
	},
	{
		Intent:   IntentContributeGoal,
		Example:  "add 500 to my vacation fund",
		Schema:   goalContributionSchema,
		Fallback: "goal_name",
	},
	{
		Intent:   IntentCreateLiability,
		Example:  "I owe 8000 on my car loan",
		Schema:   liabilitySchema,
		Fallback: "name",
	},
	{
		Intent:  IntentTransferFunds,
		Example: "move 200 from checking to savings",
		Schema:  transferSchema,
	},
	{
		Intent:   IntentCreateCredential,
		Example:  "save my github login",
		Schema:   credentialSchema,
		Fallback: "service",
	},
	{
		Intent:  IntentSearchKnowledge,
		Example: "what did I write about the kitchen renovation",
	},
	{
		Intent:  IntentConversation,
		Example: "how are you doing",
	},
	{
		Intent:  IntentUnknown,
		Example: "asdkjh qwerty",
	},
}

// SpecFor returns the registry entry for an intent.
func SpecFor(intent Intent) (IntentSpec, bool) {
	for _, spec := range registry {
		if spec.Intent == intent {
			return spec, true
		}
	}
	return IntentSpec{}, false
}

// AllIntents returns every member of the closed intent set in registry order.
func AllIntents() []Intent {
	intents := make([]Intent, 0, len(registry))
	for _, spec := range registry {
		intents = append(intents, spec.Intent)
	}
	return intents
}

// ParseIntent maps a classifier token onto the closed intent set. Anything
// unrecognized resolves to the conversational catch-all, never to an
// unconstrained string.
func ParseIntent(token string) Intent {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, spec := range registry {
		if string(spec.Intent) == token {
			return spec.Intent
		}
	}
	return IntentConversation
}
