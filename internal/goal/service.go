package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type GoalService interface {
	CreateGoal(ctx context.Context, projectID uuid.UUID, dto CreateGoalDTO) (*Goal, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	ListGoalsByProject(ctx context.Context, projectID uuid.UUID) ([]Goal, error)
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	UpdateGoal(ctx context.Context, id uuid.UUID, dto UpdateGoalDTO) (*Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	GetAllocation(ctx context.Context, id uuid.UUID) (*allocation.GoalSummary, error)
}

type goalService struct {
	db        *gorm.DB
	events    project.EventRemover
	allocOpts []allocation.Option
}

func NewGoalService(db *gorm.DB, events project.EventRemover, allocOpts ...allocation.Option) GoalService {
	return &goalService{db: db, events: events, allocOpts: allocOpts}
}

// CreateGoal checks the parent project, then its remaining capacity, then
// inserts. A rejected goal leaves nothing behind.
func (s *goalService) CreateGoal(ctx context.Context, projectID uuid.UUID, dto CreateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx).WithField("project_id", projectID)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.Warn("Attempt to create goal without authentication")
		return nil, err
	}

	g := dto.toEntity()
	g.UserID = userID
	g.ProjectID = projectID
	if err := g.Validate(); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := project.NewProjectRepository(tx).FindByIDAndUser(ctx, projectID, userID); err != nil {
			return err
		}

		validator := allocation.NewValidator(tx, s.allocOpts...)
		if err := validator.ValidateGoalHoursForProject(ctx, projectID, g.WeeklyHours, uuid.Nil); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"weekly_hours": g.WeeklyHours,
			}).Warn("Goal rejected by project allocation")
			return err
		}

		return NewGoalRepository(tx).Create(ctx, g)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created")
	return g, nil
}

func (s *goalService) ListGoals(ctx context.Context) ([]Goal, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewGoalRepository(s.db).FindAllByUser(ctx, userID)
}

func (s *goalService) ListGoalsByProject(ctx context.Context, projectID uuid.UUID) ([]Goal, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := project.NewProjectRepository(s.db).FindByIDAndUser(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return NewGoalRepository(s.db).FindAllByProject(ctx, projectID, userID)
}

func (s *goalService) GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewGoalRepository(s.db).FindByIDAndUser(ctx, id, userID)
}

// UpdateGoal re-validates weekly_hours in both directions: the goal must
// still fit its project next to its siblings, and must still cover its tasks.
func (s *goalService) UpdateGoal(ctx context.Context, id uuid.UUID, dto UpdateGoalDTO) (*Goal, error) {
	log := config.WithContext(ctx).WithField("goal_id", id)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *Goal
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewGoalRepository(tx)

		g, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		// g is discarded when the transaction rolls back.
		dto.apply(g)
		if err := g.Validate(); err != nil {
			return err
		}

		if dto.WeeklyHours != nil {
			validator := allocation.NewValidator(tx, s.allocOpts...)
			if err := validator.ValidateGoalHoursForProject(ctx, g.ProjectID, g.WeeklyHours, g.ID); err != nil {
				log.WithError(err).Warn("Goal hours exceed project allocation")
				return err
			}
			if err := validator.ValidateGoalHoursUpdate(ctx, g.ID, g.WeeklyHours); err != nil {
				log.WithError(err).Warn("Goal hours below task allocation")
				return err
			}
		}

		if err := repo.Update(ctx, g); err != nil {
			return err
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Goal updated")
	return updated, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var eventIDs []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		eventIDs, err = NewGoalRepository(tx).Delete(ctx, id, userID)
		return err
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		for _, eventID := range eventIDs {
			if err := s.events.RemoveTask(ctx, userID, eventID); err != nil {
				config.WithContext(ctx).WithError(err).Warnf("Failed to remove calendar event %s", eventID)
			}
		}
	}

	config.WithContext(ctx).WithField("goal_id", id).Info("Goal deleted")
	return nil
}

func (s *goalService) GetAllocation(ctx context.Context, id uuid.UUID) (*allocation.GoalSummary, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var summary *allocation.GoalSummary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := NewGoalRepository(tx).FindByIDAndUser(ctx, id, userID); err != nil {
			return err
		}
		var err error
		summary, err = allocation.NewValidator(tx).GoalSummary(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
