package habit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateHabit)
	r.Get("/", h.ListHabits)
	r.Get("/due", h.ListDueHabits)
	r.Get("/{id}", h.GetHabit)
	r.Put("/{id}", h.UpdateHabit)
	r.Delete("/{id}", h.DeleteHabit)
	r.Post("/{id}/complete", h.CompleteHabit)

	return r
}
