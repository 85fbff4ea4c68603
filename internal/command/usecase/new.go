package usecase

import (
	"lifehub-assistant/internal/command/repository"
	"lifehub-assistant/pkg/gcalendar"
	pkgLog "lifehub-assistant/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	store     repository.StoreRepository
	knowledge repository.KnowledgeRepository

	// calendar is optional; nil disables event scheduling for tasks.
	calendar   *gcalendar.Client
	calendarID string
	timezone   string
}

// New creates a new command executor UseCase instance.
func New(
	l pkgLog.Logger,
	store repository.StoreRepository,
	knowledge repository.KnowledgeRepository,
	calendar *gcalendar.Client,
	calendarID string,
	timezone string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		store:      store,
		knowledge:  knowledge,
		calendar:   calendar,
		calendarID: calendarID,
		timezone:   timezone,
	}
}
