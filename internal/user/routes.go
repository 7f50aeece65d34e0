package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
)

// AuthRoutes serves sign-up, login and logout publicly. Refreshing a token
// requires a valid one.
func AuthRoutes(h *Handler, logout http.HandlerFunc) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Post("/refresh", h.RefreshToken)
		r.Get("/refresh", h.RefreshToken)
	})

	return r
}

// Routes serves the account of the authenticated user.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	r.Put("/me/calendar", h.LinkCalendar)

	return r
}
