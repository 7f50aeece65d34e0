package task

import (
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	googlecalendar "github.com/saulo-duarte/chronos-planner/internal/google_calendar"
	"gorm.io/gorm"
)

type TaskContainer struct {
	Service TaskService
	Handler *Handler
}

func NewTaskContainer(
	db *gorm.DB,
	calendarManager googlecalendar.CalendarManager,
	allocOpts ...allocation.Option,
) *TaskContainer {
	service := NewService(db, calendarManager, allocOpts...)
	handler := NewHandler(service)

	return &TaskContainer{
		Service: service,
		Handler: handler,
	}
}
