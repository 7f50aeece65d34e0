package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/chore"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	"github.com/saulo-duarte/chronos-planner/internal/habit"
	"github.com/saulo-duarte/chronos-planner/internal/middlewares"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/saulo-duarte/chronos-planner/internal/task"
	"github.com/saulo-duarte/chronos-planner/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	ProjectHandler *project.Handler
	GoalHandler    *goal.Handler
	TaskHandler    *task.Handler
	ChoreHandler   *chore.Handler
	HabitHandler   *habit.Handler
	AllowedOrigins []string
	CookieDomain   string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MetricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, auth.NewHandler(cfg.CookieDomain).Logout))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/projects", project.Routes(cfg.ProjectHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/tasks", task.Routes(cfg.TaskHandler))
		r.Mount("/chores", chore.Routes(cfg.ChoreHandler))
		r.Mount("/habits", habit.Routes(cfg.HabitHandler))

		r.Post("/projects/{projectId}/goals", cfg.GoalHandler.CreateGoal)
		r.Get("/projects/{projectId}/goals", cfg.GoalHandler.ListGoalsByProject)
		r.Post("/goals/{goalId}/tasks", cfg.TaskHandler.CreateTask)
		r.Get("/goals/{goalId}/tasks", cfg.TaskHandler.ListTasksByGoal)
	})
	return r
}
