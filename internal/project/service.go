package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/allocation"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventRemover deletes the calendar events mirrored from removed tasks.
type EventRemover interface {
	RemoveTask(ctx context.Context, userID uuid.UUID, eventID string) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, dto UpdateProjectDTO) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	GetAllocation(ctx context.Context, id uuid.UUID) (*allocation.ProjectSummary, error)
}

type projectService struct {
	db        *gorm.DB
	events    EventRemover
	allocOpts []allocation.Option
}

func NewProjectService(db *gorm.DB, events EventRemover, allocOpts ...allocation.Option) ProjectService {
	return &projectService{db: db, events: events, allocOpts: allocOpts}
}

func (s *projectService) CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.Warn("Attempt to create project without authentication")
		return nil, err
	}

	p := dto.toEntity()
	p.UserID = userID
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := NewProjectRepository(s.db).Create(ctx, p); err != nil {
		log.WithError(err).Error("Failed to create project")
		return nil, err
	}

	log.WithField("project_id", p.ID).Info("Project created")
	return p, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]Project, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := NewProjectRepository(s.db).FindAllByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return NewProjectRepository(s.db).FindByIDAndUser(ctx, id, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, id uuid.UUID, dto UpdateProjectDTO) (*Project, error) {
	log := config.WithContext(ctx).WithField("project_id", id)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var updated *Project
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewProjectRepository(tx)

		p, err := repo.FindByIDAndUser(ctx, id, userID)
		if err != nil {
			return err
		}

		// p is discarded when the transaction rolls back.
		dto.apply(p)
		if err := p.Validate(); err != nil {
			return err
		}

		if dto.WeeklyHours != nil {
			validator := allocation.NewValidator(tx, s.allocOpts...)
			if err := validator.ValidateProjectHoursUpdate(ctx, id, *dto.WeeklyHours); err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"weekly_hours": *dto.WeeklyHours,
				}).Warn("Project hours update rejected")
				return err
			}
		}

		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Project updated")
	return updated, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx).WithField("project_id", id)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var eventIDs []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		eventIDs, err = NewProjectRepository(tx).Delete(ctx, id, userID)
		return err
	})
	if err != nil {
		return err
	}

	s.removeEvents(ctx, userID, eventIDs)
	log.Info("Project deleted")
	return nil
}

func (s *projectService) GetAllocation(ctx context.Context, id uuid.UUID) (*allocation.ProjectSummary, error) {
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var summary *allocation.ProjectSummary
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := NewProjectRepository(tx).FindByIDAndUser(ctx, id, userID); err != nil {
			return err
		}
		var err error
		summary, err = allocation.NewValidator(tx).ProjectSummary(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *projectService) removeEvents(ctx context.Context, userID uuid.UUID, eventIDs []string) {
	if s.events == nil {
		return
	}
	for _, eventID := range eventIDs {
		if err := s.events.RemoveTask(ctx, userID, eventID); err != nil {
			config.WithContext(ctx).WithError(err).Warnf("Failed to remove calendar event %s", eventID)
		}
	}
}
