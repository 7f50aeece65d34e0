package project

import (
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"gorm.io/gorm"
)

type ProjectContainer struct {
	Service ProjectService
	Handler *Handler
}

func NewProjectContainer(db *gorm.DB, events EventRemover, allocOpts ...allocation.Option) *ProjectContainer {
	service := NewProjectService(db, events, allocOpts...)
	handler := NewHandler(service)

	return &ProjectContainer{
		Service: service,
		Handler: handler,
	}
}
