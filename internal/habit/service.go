package habit

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/metrics"
	"github.com/saulo-duarte/chronos-planner/internal/recurrence"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HabitService interface {
	CreateHabit(ctx context.Context, dto recurrence.CreateItemDTO) (*Habit, error)
	ListHabits(ctx context.Context) ([]Habit, error)
	ListDueHabits(ctx context.Context, on util.LocalDate) ([]Habit, error)
	GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error)
	UpdateHabit(ctx context.Context, id uuid.UUID, dto recurrence.UpdateItemDTO) (*Habit, error)
	DeleteHabit(ctx context.Context, id uuid.UUID) error
	CompleteHabit(ctx context.Context, id uuid.UUID, on util.LocalDate) (*Habit, error)
}

type habitService struct {
	db *gorm.DB
}

func NewHabitService(db *gorm.DB) HabitService {
	return &habitService{db: db}
}

func (s *habitService) CreateHabit(ctx context.Context, dto recurrence.CreateItemDTO) (*Habit, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.Warn("Attempt to create habit without authentication")
		return nil, err
	}

	hb := &Habit{UserID: userID, Item: dto.ToItem()}
	if err := hb.Validate(); err != nil {
		return nil, err
	}

	if err := NewHabitRepository(s.db).Create(ctx, hb); err != nil {
		log.WithError(err).Error("Failed to create habit")
		return nil, err
	}

	log.WithField("habit_id", hb.ID).Info("Habit created")
	return hb, nil
}

func (s *habitService) ListHabits(ctx context.Context) ([]Habit, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewHabitRepository(s.db).ListByUser(ctx, userID)
}

func (s *habitService) ListDueHabits(ctx context.Context, on util.LocalDate) ([]Habit, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewHabitRepository(s.db).ListDue(ctx, userID, on)
}

func (s *habitService) GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewHabitRepository(s.db).FindByIDAndUser(ctx, id, userID)
}

func (s *habitService) UpdateHabit(ctx context.Context, id uuid.UUID, dto recurrence.UpdateItemDTO) (*Habit, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *Habit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewHabitRepository(tx)
		hb, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		dto.Apply(&hb.Item)
		if err := hb.Validate(); err != nil {
			return err
		}
		if err := repo.Update(ctx, hb); err != nil {
			return err
		}
		updated = hb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *habitService) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	if err := NewHabitRepository(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}
	config.WithContext(ctx).WithField("habit_id", id).Info("Habit deleted")
	return nil
}

// CompleteHabit records a completion on the given day, updating the streak
// and moving the due date forward from it.
func (s *habitService) CompleteHabit(ctx context.Context, id uuid.UUID, on util.LocalDate) (*Habit, error) {
	log := config.WithContext(ctx).WithField("habit_id", id)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var completed *Habit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewHabitRepository(tx)
		hb, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		if err := hb.Complete(on); err != nil {
			return err
		}
		if err := repo.Update(ctx, hb); err != nil {
			return err
		}
		completed = hb
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncrementRecurringCompletion("habit")
	log.WithFields(logrus.Fields{
		"completed_on":  on.String(),
		"next_due_date": completed.NextDueDate.String(),
		"streak_count":  completed.StreakCount,
	}).Info("Habit completed")
	return completed, nil
}
