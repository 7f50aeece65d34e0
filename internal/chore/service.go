package chore

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

type ChoreService interface {
	CreateChore(ctx context.Context, dto recurrence.CreateItemDTO) (*Chore, error)
	ListChores(ctx context.Context) ([]Chore, error)
	ListDueChores(ctx context.Context, on util.LocalDate) ([]Chore, error)
	GetChore(ctx context.Context, id uuid.UUID) (*Chore, error)
	UpdateChore(ctx context.Context, id uuid.UUID, dto recurrence.UpdateItemDTO) (*Chore, error)
	DeleteChore(ctx context.Context, id uuid.UUID) error
	CompleteChore(ctx context.Context, id uuid.UUID, on util.LocalDate) (*Chore, error)
}

type choreService struct {
	db *gorm.DB
}

func NewChoreService(db *gorm.DB) ChoreService {
	return &choreService{db: db}
}

func (s *choreService) CreateChore(ctx context.Context, dto recurrence.CreateItemDTO) (*Chore, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.Warn("Attempt to create chore without authentication")
		return nil, err
	}

	c := &Chore{UserID: userID, Item: dto.ToItem()}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := NewChoreRepository(s.db).Create(ctx, c); err != nil {
		log.WithError(err).Error("Failed to create chore")
		return nil, err
	}

	log.WithField("chore_id", c.ID).Info("Chore created")
	return c, nil
}

func (s *choreService) ListChores(ctx context.Context) ([]Chore, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewChoreRepository(s.db).ListByUser(ctx, userID)
}

func (s *choreService) ListDueChores(ctx context.Context, on util.LocalDate) ([]Chore, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewChoreRepository(s.db).ListDue(ctx, userID, on)
}

func (s *choreService) GetChore(ctx context.Context, id uuid.UUID) (*Chore, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewChoreRepository(s.db).FindByIDAndUser(ctx, id, userID)
}

func (s *choreService) UpdateChore(ctx context.Context, id uuid.UUID, dto recurrence.UpdateItemDTO) (*Chore, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *Chore
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewChoreRepository(tx)
		c, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		dto.Apply(&c.Item)
		if err := c.Validate(); err != nil {
			return err
		}
		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *choreService) DeleteChore(ctx context.Context, id uuid.UUID) error {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	if err := NewChoreRepository(s.db).Delete(ctx, id, userID); err != nil {
		return err
	}
	config.WithContext(ctx).WithField("chore_id", id).Info("Chore deleted")
	return nil
}

// CompleteChore records a completion on the given day and moves the due date
// forward from it.
func (s *choreService) CompleteChore(ctx context.Context, id uuid.UUID, on util.LocalDate) (*Chore, error) {
	log := config.WithContext(ctx).WithField("chore_id", id)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var completed *Chore
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewChoreRepository(tx)
		c, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		if err := c.Complete(on); err != nil {
			return err
		}
		if err := repo.Update(ctx, c); err != nil {
			return err
		}
		completed = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncrementRecurringCompletion("chore")
	log.WithFields(logrus.Fields{
		"completed_on":  on.String(),
		"next_due_date": completed.NextDueDate.String(),
	}).Info("Chore completed")
	return completed, nil
}
