package usecase

import (
	"context"
	"fmt"
	"strings"

	"lifehub-assistant/internal/command"
	"lifehub-assistant/internal/command/repository"
	"lifehub-assistant/internal/interpreter"
	"lifehub-assistant/internal/model"
)

const defaultSearchLimit = 5

// Execute persists the entity a CommandResult describes. The store write
// is the only fatal step: knowledge index registration and calendar
// scheduling are best-effort and only logged when they fail.
func (uc *implUseCase) Execute(ctx context.Context, sc model.Scope, result *interpreter.CommandResult) (command.ExecuteOutput, error) {
	if result == nil {
		return command.ExecuteOutput{}, command.ErrNilResult
	}

	switch result.Intent {
	case interpreter.IntentConversation, interpreter.IntentUnknown:
		return command.ExecuteOutput{Executed: false}, nil

	case interpreter.IntentSearchKnowledge:
		out, err := uc.Search(ctx, sc, command.SearchInput{
			Query: result.Params.GetString("query"),
			Limit: defaultSearchLimit,
		})
		if err != nil {
			return command.ExecuteOutput{}, err
		}
		return command.ExecuteOutput{
			Executed: true,
			Message:  formatSearchMessage(out.Results),
		}, nil
	}

	kind, ok := recordKindFor(result.Intent)
	if !ok {
		return command.ExecuteOutput{}, fmt.Errorf("%w: %s", command.ErrNotExecutable, result.Intent)
	}

	record, err := uc.store.CreateRecord(ctx, repository.CreateRecordOptions{
		Kind:    kind,
		Title:   titleFor(result),
		Content: contentFor(result),
	})
	if err != nil {
		uc.l.Errorf(ctx, "command.Execute: failed to persist %s for user %s: %v", kind, sc.UserID, err)
		return command.ExecuteOutput{}, fmt.Errorf("persist %s: %w", kind, err)
	}

	// Registration failures must not undo a successful write.
	if err := uc.knowledge.Register(ctx, model.Artifact{
		RecordID:   record.ID,
		UserID:     sc.UserID,
		EntityType: kind,
		Content:    record.Title + "\n" + contentFor(result),
		URL:        record.URL,
		CreateTime: record.CreateTime,
	}); err != nil {
		uc.l.Warnf(ctx, "command.Execute: knowledge registration failed for %s: %v", record.ID, err)
	}

	output := command.ExecuteOutput{
		Executed: true,
		Record:   record,
		Message:  fmt.Sprintf("Created %s %q.", kind, record.Title),
	}

	if result.Intent == interpreter.IntentCreateTask {
		output.EventURL = uc.scheduleTaskEvent(ctx, result, record)
	}

	return output, nil
}

// Search runs a semantic lookup over the knowledge index.
func (uc *implUseCase) Search(ctx context.Context, sc model.Scope, input command.SearchInput) (command.SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return command.SearchOutput{}, command.ErrEmptyQuery
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	found, err := uc.knowledge.Search(ctx, repository.SearchOptions{Query: query, Limit: limit, UserID: sc.UserID})
	if err != nil {
		return command.SearchOutput{}, fmt.Errorf("search knowledge: %w", err)
	}

	results := make([]command.SearchResult, 0, len(found))
	for _, f := range found {
		results = append(results, command.SearchResult{
			RecordID:   f.RecordID,
			EntityType: payloadString(f.Payload, "entity_type"),
			Content:    payloadString(f.Payload, "content"),
			URL:        payloadString(f.Payload, "url"),
			Score:      f.Score,
		})
	}

	uc.l.Infof(ctx, "command.Search: %d results for user %s", len(results), sc.UserID)
	return command.SearchOutput{Results: results}, nil
}

// scheduleTaskEvent creates a calendar event for a task's due date.
// Best-effort: any failure is logged and an empty link returned.
func (uc *implUseCase) scheduleTaskEvent(ctx context.Context, result *interpreter.CommandResult, record model.Record) string {
	if uc.calendar == nil {
		return ""
	}

	start, err := dueTimeFor(result.Params, uc.timezone)
	if err != nil {
		uc.l.Warnf(ctx, "command.Execute: unparseable due date for %s: %v", record.ID, err)
		return ""
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendarEventRequest(uc.calendarID, uc.timezone, result, start))
	if err != nil {
		uc.l.Warnf(ctx, "command.Execute: calendar event failed for %s: %v", record.ID, err)
		return ""
	}

	return event.HtmlLink
}
