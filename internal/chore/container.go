package chore

import "gorm.io/gorm"

type ChoreContainer struct {
	Service ChoreService
	Handler *Handler
}

func NewChoreContainer(db *gorm.DB) *ChoreContainer {
	service := NewChoreService(db)
	handler := NewHandler(service)

	return &ChoreContainer{
		Service: service,
		Handler: handler,
	}
}
