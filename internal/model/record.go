package model

// RecordKind identifies the domain entity a stored record represents.
type RecordKind string

const (
	KindTask        RecordKind = "task"
	KindNote        RecordKind = "note"
	KindJournal     RecordKind = "journal"
	KindTransaction RecordKind = "transaction"
	KindRecurring   RecordKind = "recurring_payment"
	KindBudget      RecordKind = "budget"
	KindCategory    RecordKind = "category"
	KindAccount     RecordKind = "account"
	KindGoal        RecordKind = "goal"
	KindGoalDeposit RecordKind = "goal_contribution"
	KindLiability   RecordKind = "liability"
	KindTransfer    RecordKind = "transfer"
	KindCredential  RecordKind = "credential"
)

// Record represents an entity persisted in the hosted data store.
type Record struct {
	ID         string     // Store internal ID (name field, e.g. "records/123")
	UID        string     // Store short UID
	Kind       RecordKind // Domain entity kind
	Title      string     // Short human-readable title
	Content    string     // Full Markdown content
	URL        string     // Deep link to the record in the app UI
	CreateTime string     // RFC3339 creation time string from the store API
	UpdateTime string     // RFC3339 last updated time string from the store API
}

// Artifact is what gets registered into the knowledge index after a
// creation command succeeds: free text plus a metadata bag keyed by
// entity type and the original record identifiers.
type Artifact struct {
	RecordID   string
	UserID     string
	EntityType RecordKind
	Content    string
	URL        string
	CreateTime string
}
