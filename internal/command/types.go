package command

import "lifehub-assistant/internal/model"

// ExecuteOutput is the result of executing one command.
type ExecuteOutput struct {
	Executed bool // false for conversational intents, which persist nothing
	Record   model.Record
	Message  string // user-facing outcome line
	EventURL string // calendar event link, tasks only, empty when scheduling failed
}

// SearchInput defines knowledge search parameters.
type SearchInput struct {
	Query string
	Limit int
}

// SearchOutput holds semantic search results.
type SearchOutput struct {
	Results []SearchResult
}

// SearchResult is one semantic match from the knowledge index.
type SearchResult struct {
	RecordID   string
	EntityType string
	Content    string
	URL        string
	Score      float64
}
