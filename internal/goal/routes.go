package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListGoals)
	r.Get("/{id}", h.GetGoal)
	r.Put("/{id}", h.UpdateGoal)
	r.Delete("/{id}", h.DeleteGoal)
	r.Get("/{id}/allocation", h.GetAllocation)

	return r
}
