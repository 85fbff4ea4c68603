package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lifehub-assistant/internal/command"
	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
	"lifehub-assistant/pkg/gcalendar"
)

// recordKindFor maps a creation intent to the record kind it persists.
func recordKindFor(intent interpreter.Intent) (model.RecordKind, bool) {
	switch intent {
	case interpreter.IntentCreateTask:
		return model.KindTask, true
	case interpreter.IntentCreateNote:
		return model.KindNote, true
	case interpreter.IntentCreateJournal:
		return model.KindJournal, true
	case interpreter.IntentCreateTransaction:
		return model.KindTransaction, true
	case interpreter.IntentCreateRecurring:
		return model.KindRecurring, true
	case interpreter.IntentCreateBudget:
		return model.KindBudget, true
	case interpreter.IntentCreateCategory:
		return model.KindCategory, true
	case interpreter.IntentCreateAccount:
		return model.KindAccount, true
	case interpreter.IntentCreateGoal:
		return model.KindGoal, true
	case interpreter.IntentContributeGoal:
		return model.KindGoalDeposit, true
	case interpreter.IntentCreateLiability:
		return model.KindLiability, true
	case interpreter.IntentTransferFunds:
		return model.KindTransfer, true
	case interpreter.IntentCreateCredential:
		return model.KindCredential, true
	}
	return "", false
}

// titleFor picks the record title from the params, falling back to a
// generic kind-based title when nothing usable was extracted.
func titleFor(result *interpreter.CommandResult) string {
	p := result.Params

	switch result.Intent {
	case interpreter.IntentCreateTask:
		return p.GetString("title")
	case interpreter.IntentCreateNote, interpreter.IntentCreateJournal:
		return firstLine(p.GetString("content"))
	case interpreter.IntentCreateTransaction:
		return p.GetString("description")
	case interpreter.IntentCreateBudget:
		return p.GetString("category") + " budget"
	case interpreter.IntentCreateAccount:
		// An unnamed account gets a default name here, not upstream: the
		// extractor's null means the user named nothing.
		if name := p.GetString("name"); name != "" {
			return name
		}
		return "New " + p.GetString("type") + " account"
	case interpreter.IntentContributeGoal:
		return p.GetString("goal_name") + " contribution"
	case interpreter.IntentTransferFunds:
		return "Transfer"
	case interpreter.IntentCreateCredential:
		return p.GetString("service")
	default:
		if name := p.GetString("name"); name != "" {
			return name
		}
	}

	kind, _ := recordKindFor(result.Intent)
	return "New " + string(kind)
}

// contentFor renders the params into a Markdown body, one line per field.
// Notes and journal entries keep the utterance verbatim instead.
func contentFor(result *interpreter.CommandResult) string {
	p := result.Params

	switch result.Intent {
	case interpreter.IntentCreateNote, interpreter.IntentCreateJournal:
		return p.GetString("content")
	}

	var sb strings.Builder
	for _, f := range paramOrder(result.Intent) {
		v, ok := p[f]
		if !ok || v == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("- **%s:** %s\n", fieldLabel(f), paramString(v)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// paramOrder fixes the field rendering order per intent so record bodies
// are stable across runs.
func paramOrder(intent interpreter.Intent) []string {
	switch intent {
	case interpreter.IntentCreateTask:
		return []string{"description", "priority", "due_date"}
	case interpreter.IntentCreateTransaction:
		return []string{"amount", "type", "category", "description"}
	case interpreter.IntentCreateRecurring:
		return []string{"amount", "frequency", "due_day", "category"}
	case interpreter.IntentCreateBudget:
		return []string{"amount", "period", "category"}
	case interpreter.IntentCreateCategory:
		return []string{"type"}
	case interpreter.IntentCreateAccount:
		return []string{"type", "balance"}
	case interpreter.IntentCreateGoal:
		return []string{"target_amount"}
	case interpreter.IntentContributeGoal:
		return []string{"goal_name", "amount"}
	case interpreter.IntentCreateLiability:
		return []string{"amount", "type"}
	case interpreter.IntentTransferFunds:
		return []string{"amount", "from_account", "to_account"}
	case interpreter.IntentCreateCredential:
		return []string{"username", "notes"}
	}
	return nil
}

func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func paramString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// dueTimeFor parses the task due date into a morning slot in the
// configured timezone.
func dueTimeFor(p interpreter.Params, timezone string) (time.Time, error) {
	due := p.GetString("due_date")
	if due == "" {
		return time.Time{}, fmt.Errorf("due_date is empty")
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation("2006-01-02", due, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due date %q: %w", due, err)
	}

	return day.Add(9 * time.Hour), nil
}

func gcalendarEventRequest(calendarID, timezone string, result *interpreter.CommandResult, start time.Time) gcalendar.CreateEventRequest {
	return gcalendar.CreateEventRequest{
		CalendarID:  calendarID,
		Summary:     result.Params.GetString("title"),
		Description: result.Params.GetString("description"),
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Timezone:    timezone,
	}
}

// formatSearchMessage renders search hits into a short user-facing list.
func formatSearchMessage(results []command.SearchResult) string {
	if len(results) == 0 {
		return "No matching entries found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matching entries:\n", len(results)))
	for i, r := range results {
		line := firstLine(r.Content)
		if r.URL != "" {
			sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, line, r.URL))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if runes := []rune(s); len(runes) > 80 {
		s = string(runes[:77]) + "..."
	}
	return s
}

func payloadString(payload map[string]interface{}, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
