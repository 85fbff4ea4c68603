package usecase

import (
	"fmt"
	"strconv"

	"lifehub-assistant/internal/interpreter"
)

// confirm renders the "here's what I'll do" message for an extraction.
// Pure string templating over the already-extracted params: partial data
// gets a shorter phrasing instead of a template with empty holes.
func (uc *implUseCase) confirm(intent interpreter.Intent, ext interpreter.Extraction) string {
	p := ext.Params

	if ext.Degraded {
		return degradedConfirmation(intent)
	}

	switch intent {
	case interpreter.IntentCreateTask:
		return fmt.Sprintf("I'll create the task %q due on %s.", p.GetString("title"), p.GetString("due_date"))

	case interpreter.IntentCreateNote:
		return "I'll save that as a note."

	case interpreter.IntentCreateJournal:
		return "I'll add that to your journal."

	case interpreter.IntentCreateTransaction:
		kind := p.GetString("type")
		if kind == "" {
			kind = "transaction"
		}
		return fmt.Sprintf("I'll record a %s of %s for %q.", kind, amount(p, "amount"), p.GetString("description"))

	case interpreter.IntentCreateRecurring:
		if freq := p.GetString("frequency"); freq != "" {
			return fmt.Sprintf("I'll set up the %s recurring payment %q at %s.", freq, p.GetString("name"), amount(p, "amount"))
		}
		return fmt.Sprintf("I'll set up the recurring payment %q at %s.", p.GetString("name"), amount(p, "amount"))

	case interpreter.IntentCreateBudget:
		return fmt.Sprintf("I'll set a %s budget of %s for %q.", p.GetString("period"), amount(p, "amount"), p.GetString("category"))

	case interpreter.IntentCreateCategory:
		return fmt.Sprintf("I'll create the %s category %q.", p.GetString("type"), p.GetString("name"))

	case interpreter.IntentCreateAccount:
		// An unnamed account is a normal outcome. Never claim a name the
		// user did not give.
		name := p.GetString("name")
		if name == "" {
			if bal, ok := p.GetNumber("balance"); ok {
				return fmt.Sprintf("I'll create a new %s account with a balance of %s.", p.GetString("type"), formatAmount(bal))
			}
			return fmt.Sprintf("I'll create a new %s account.", p.GetString("type"))
		}
		return fmt.Sprintf("I'll create the %s account %q.", p.GetString("type"), name)

	case interpreter.IntentCreateGoal:
		if target, ok := p.GetNumber("target_amount"); ok {
			return fmt.Sprintf("I'll create the goal %q with a target of %s.", p.GetString("name"), formatAmount(target))
		}
		return fmt.Sprintf("I'll create the goal %q.", p.GetString("name"))

	case interpreter.IntentContributeGoal:
		return fmt.Sprintf("I'll add %s to your goal %q.", amount(p, "amount"), p.GetString("goal_name"))

	case interpreter.IntentCreateLiability:
		return fmt.Sprintf("I'll track the liability %q at %s.", p.GetString("name"), amount(p, "amount"))

	case interpreter.IntentTransferFunds:
		from, to := p.GetString("from_account"), p.GetString("to_account")
		switch {
		case from != "" && to != "":
			return fmt.Sprintf("I'll transfer %s from %q to %q.", amount(p, "amount"), from, to)
		case to != "":
			return fmt.Sprintf("I'll transfer %s to %q.", amount(p, "amount"), to)
		case from != "":
			return fmt.Sprintf("I'll transfer %s out of %q.", amount(p, "amount"), from)
		default:
			return fmt.Sprintf("I'll transfer %s between your accounts.", amount(p, "amount"))
		}

	case interpreter.IntentCreateCredential:
		return fmt.Sprintf("I'll save a login entry for %q.", p.GetString("service"))

	case interpreter.IntentSearchKnowledge:
		return "Searching your saved knowledge..."

	default:
		return ""
	}
}

// degradedConfirmation is the generic phrasing used when extraction fell
// back to the raw utterance. It claims the action type only, no details.
func degradedConfirmation(intent interpreter.Intent) string {
	switch intent {
	case interpreter.IntentCreateTask:
		return "I'll create a task from your message."
	case interpreter.IntentCreateTransaction:
		return "I'll record a transaction from your message."
	case interpreter.IntentCreateRecurring:
		return "I'll set up a recurring payment from your message."
	case interpreter.IntentCreateBudget:
		return "I'll set up a budget from your message."
	case interpreter.IntentCreateCategory:
		return "I'll create a category from your message."
	case interpreter.IntentCreateAccount:
		return "I'll create a new account from your message."
	case interpreter.IntentCreateGoal:
		return "I'll create a goal from your message."
	case interpreter.IntentContributeGoal:
		return "I'll record a goal contribution from your message."
	case interpreter.IntentCreateLiability:
		return "I'll track a liability from your message."
	case interpreter.IntentTransferFunds:
		return "I'll record a transfer from your message."
	case interpreter.IntentCreateCredential:
		return "I'll save a login entry from your message."
	default:
		return ""
	}
}

func amount(p interpreter.Params, key string) string {
	if n, ok := p.GetNumber(key); ok {
		return formatAmount(n)
	}
	return "the stated amount"
}

func formatAmount(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
