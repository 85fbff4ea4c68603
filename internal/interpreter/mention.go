package interpreter

import "strings"

// mentionRule maps an @prefix to an intent. When Disambiguate is set, the
// presence of any keyword in the remainder flips the match from Intent to
// AltIntent.
type mentionRule struct {
	Prefix    string
	Intent    Intent
	AltIntent Intent
	Keywords  []string
}

// Rules are checked in order; longer prefixes sharing a stem must come
// first so "@transfer" is never shadowed by a shorter rule.
var mentionRules = []mentionRule{
	{Prefix: "@task", Intent: IntentCreateTask},
	{Prefix: "@note", Intent: IntentCreateNote},
	{Prefix: "@journal", Intent: IntentCreateJournal},
	{Prefix: "@goal", Intent: IntentCreateGoal, AltIntent: IntentContributeGoal, Keywords: []string{"add", "contribute", "deposit"}},
	{Prefix: "@finance", Intent: IntentCreateTransaction, AltIntent: IntentCreateAccount, Keywords: []string{"account", "balance"}},
	{Prefix: "@budget", Intent: IntentCreateBudget},
	{Prefix: "@recurring", Intent: IntentCreateRecurring},
	{Prefix: "@category", Intent: IntentCreateCategory},
	{Prefix: "@liability", Intent: IntentCreateLiability},
	{Prefix: "@transfer", Intent: IntentTransferFunds},
	{Prefix: "@credential", Intent: IntentCreateCredential},
	{Prefix: "@search", Intent: IntentSearchKnowledge},
}

// ParseMention checks whether the utterance starts with an explicit @mention
// and, if so, returns the intent it names plus the utterance with the
// mention stripped. Matching is case-insensitive and applies to the trimmed
// start of the string only; a mention appearing mid-sentence never triggers.
func ParseMention(query string) (Intent, string, bool) {
	trimmed := strings.TrimSpace(query)
	lowered := strings.ToLower(trimmed)

	for _, rule := range mentionRules {
		if !strings.HasPrefix(lowered, rule.Prefix) {
			continue
		}

		remainder := strings.TrimSpace(trimmed[len(rule.Prefix):])
		intent := rule.Intent

		if rule.AltIntent != "" {
			lowerRemainder := strings.ToLower(remainder)
			for _, kw := range rule.Keywords {
				if strings.Contains(lowerRemainder, kw) {
					intent = rule.AltIntent
					break
				}
			}
		}

		return intent, remainder, true
	}

	return "", trimmed, false
}
