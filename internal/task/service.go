package task

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	googlecalendar "github.com/saulo-duarte/chronos-planner/internal/google_calendar"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TaskService interface {
	CreateTask(ctx context.Context, goalID uuid.UUID, dto CreateTaskDTO) (*Task, error)
	FindAllByUser(ctx context.Context) ([]Task, error)
	FindAllByGoalID(ctx context.Context, goalID uuid.UUID) ([]Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, dto UpdateTaskDTO) (*Task, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	db        *gorm.DB
	calendar  googlecalendar.CalendarManager
	allocOpts []allocation.Option
}

// NewService builds the task service. calendar may be nil to disable the
// Google Calendar mirror.
func NewService(db *gorm.DB, calendar googlecalendar.CalendarManager, allocOpts ...allocation.Option) TaskService {
	return &taskService{db: db, calendar: calendar, allocOpts: allocOpts}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, err
	}
	return userID, nil
}

func (s *taskService) CreateTask(ctx context.Context, goalID uuid.UUID, dto CreateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx).WithField("goal_id", goalID)
	userID, err := getUserIDFromContext(ctx, log, "create task")
	if err != nil {
		return nil, err
	}

	t := dto.toEntity()
	t.UserID = userID
	t.GoalID = goalID
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := goal.NewGoalRepository(tx).FindByIDAndUser(ctx, goalID, userID); err != nil {
			return err
		}

		validator := allocation.NewValidator(tx, s.allocOpts...)
		if err := validator.ValidateTaskHoursForGoal(ctx, goalID, t.WeeklyHours, uuid.Nil); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"weekly_hours": t.WeeklyHours,
			}).Warn("Task rejected by goal allocation")
			return err
		}

		return NewRepository(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	if t.hasTimeBlock() {
		if eventID := s.syncCalendar(ctx, userID, t); eventID != t.GoogleCalendarEventID {
			t.GoogleCalendarEventID = eventID
			if err := NewRepository(s.db).SetCalendarEventID(ctx, t.ID, eventID); err != nil {
				log.WithError(err).Error("Failed to update task with Google Calendar Event ID")
			}
		}
	}

	log.WithField("task_id", t.ID).Info("Task created successfully")
	return t, nil
}

func (s *taskService) FindAllByUser(ctx context.Context) ([]Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks")
	if err != nil {
		return nil, err
	}

	tasks, err := NewRepository(s.db).ListByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks by user")
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) FindAllByGoalID(ctx context.Context, goalID uuid.UUID) ([]Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks by goal")
	if err != nil {
		return nil, err
	}

	if _, err := goal.NewGoalRepository(s.db).FindByIDAndUser(ctx, goalID, userID); err != nil {
		log.WithError(err).WithField("goal_id", goalID).Warn("Goal not found or does not belong to user")
		return nil, err
	}

	tasks, err := NewRepository(s.db).ListByGoalAndUser(ctx, goalID, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks by goal")
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "find task")
	if err != nil {
		return nil, err
	}
	return NewRepository(s.db).FindByIDAndUser(ctx, id, userID)
}

func (s *taskService) UpdateTask(ctx context.Context, id uuid.UUID, dto UpdateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx).WithField("task_id", id)
	userID, err := getUserIDFromContext(ctx, log, "update task")
	if err != nil {
		return nil, err
	}

	var (
		updated         *Task
		calendarChanged bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		existing, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		// existing is discarded when the transaction rolls back.
		calendarChanged = dto.apply(existing)
		if err := existing.Validate(); err != nil {
			return err
		}

		if dto.WeeklyHours != nil {
			validator := allocation.NewValidator(tx, s.allocOpts...)
			if err := validator.ValidateTaskHoursForGoal(ctx, existing.GoalID, existing.WeeklyHours, existing.ID); err != nil {
				log.WithError(err).Warn("Task hours exceed goal allocation")
				return err
			}
		}

		if err := repo.Update(ctx, existing); err != nil {
			log.WithError(err).Error("Failed to update task")
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if calendarChanged {
		if eventID := s.syncCalendar(ctx, userID, updated); eventID != updated.GoogleCalendarEventID {
			updated.GoogleCalendarEventID = eventID
			if err := NewRepository(s.db).SetCalendarEventID(ctx, updated.ID, eventID); err != nil {
				log.WithError(err).Error("Failed to update task with Google Calendar Event ID")
			}
		}
	}

	log.Info("Task updated successfully")
	return updated, nil
}

func (s *taskService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx).WithField("task_id", id)
	userID, err := getUserIDFromContext(ctx, log, "delete task")
	if err != nil {
		return err
	}

	var googleEventID string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		existing, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}
		googleEventID = existing.GoogleCalendarEventID
		return repo.Delete(ctx, id, userID)
	})
	if err != nil {
		return err
	}

	if googleEventID != "" && s.calendar != nil {
		if err := s.calendar.RemoveTask(ctx, userID, googleEventID); err != nil {
			log.WithError(err).Warnf("Failed to delete Google Calendar event %s", googleEventID)
		}
	}

	log.Info("Task deleted successfully")
	return nil
}

// syncCalendar mirrors t into the user's calendar and returns the event id t
// should keep. Calendar failures never fail the task mutation.
func (s *taskService) syncCalendar(ctx context.Context, userID uuid.UUID, t *Task) string {
	if s.calendar == nil {
		return t.GoogleCalendarEventID
	}

	eventID, err := s.calendar.SyncTask(ctx, userID, t.calendarTask())
	if err != nil {
		config.WithContext(ctx).WithError(err).Warnf("Failed to sync task %s with Google Calendar", t.ID)
	}
	return eventID
}
