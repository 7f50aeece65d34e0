package container

import (
	"context"
	"log"
	"net/http"

	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/chore"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/database"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	googlecalendar "github.com/saulo-duarte/chronos-planner/internal/google_calendar"
	"github.com/saulo-duarte/chronos-planner/internal/habit"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/saulo-duarte/chronos-planner/internal/router"
	"github.com/saulo-duarte/chronos-planner/internal/task"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Settings                config.Settings
	UserContainer           *user.UserContainer
	ProjectContainer        *project.ProjectContainer
	GoalContainer           *goal.GoalContainer
	TaskContainer           *task.TaskContainer
	ChoreContainer          *chore.ChoreContainer
	HabitContainer          *habit.HabitContainer
	GoogleCalendarContainer *googlecalendar.GoogleCalendarContainer
}

// New loads configuration, connects and migrates the database, and wires
// every feature. It exits the process on failure.
func New() *Container {
	config.Init()

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}
	config.Current = settings

	auth.Init()
	config.InitCrypto()

	if err := config.Connect(context.Background(), settings.Database.DSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := database.Migrate(config.DB); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	return Build(config.DB, settings)
}

// Build wires the feature containers on an open database.
func Build(db *gorm.DB, settings config.Settings) *Container {
	var allocOpts []allocation.Option
	if settings.Allocation.LockParent && config.IsPostgresDSN(settings.Database.DSN) {
		allocOpts = append(allocOpts, allocation.WithParentLock())
	}

	userContainer := user.NewUserContainer(db, settings.Auth.AccessTokenTTL, settings.Auth.CookieDomain)
	calendarContainer := googlecalendar.NewGoogleCalendarContainer(userContainer.Repo)
	calendar := calendarContainer.CalendarManager

	return &Container{
		Settings:                settings,
		UserContainer:           userContainer,
		ProjectContainer:        project.NewProjectContainer(db, calendar, allocOpts...),
		GoalContainer:           goal.NewGoalContainer(db, calendar, allocOpts...),
		TaskContainer:           task.NewTaskContainer(db, calendar, allocOpts...),
		ChoreContainer:          chore.NewChoreContainer(db),
		HabitContainer:          habit.NewHabitContainer(db),
		GoogleCalendarContainer: calendarContainer,
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		ProjectHandler: c.ProjectContainer.Handler,
		GoalHandler:    c.GoalContainer.Handler,
		TaskHandler:    c.TaskContainer.Handler,
		ChoreHandler:   c.ChoreContainer.Handler,
		HabitHandler:   c.HabitContainer.Handler,
		AllowedOrigins: c.Settings.Server.AllowedOrigins,
		CookieDomain:   c.Settings.Auth.CookieDomain,
	})
}
