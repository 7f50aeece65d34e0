package habit

import "gorm.io/gorm"

type HabitContainer struct {
	Service HabitService
	Handler *Handler
}

func NewHabitContainer(db *gorm.DB) *HabitContainer {
	service := NewHabitService(db)
	handler := NewHandler(service)

	return &HabitContainer{
		Service: service,
		Handler: handler,
	}
}
