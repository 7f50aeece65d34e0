package goal

import (
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"gorm.io/gorm"
)

type GoalContainer struct {
	Service GoalService
	Handler *Handler
}

func NewGoalContainer(db *gorm.DB, events project.EventRemover, allocOpts ...allocation.Option) *GoalContainer {
	service := NewGoalService(db, events, allocOpts...)
	handler := NewHandler(service)

	return &GoalContainer{
		Service: service,
		Handler: handler,
	}
}
