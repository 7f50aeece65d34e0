package chore

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateChore)
	r.Get("/", h.ListChores)
	r.Get("/due", h.ListDueChores)
	r.Get("/{id}", h.GetChore)
	r.Put("/{id}", h.UpdateChore)
	r.Delete("/{id}", h.DeleteChore)
	r.Post("/{id}/complete", h.CompleteChore)

	return r
}
