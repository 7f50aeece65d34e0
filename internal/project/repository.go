package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Project, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id, userID uuid.UUID) ([]string, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *Project) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// FindByIDAndUser returns apperror.NotFoundError when the project is missing
// or belongs to another user.
func (r *projectRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Project", id)
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *Project) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes the project with its goals and their tasks. It returns the
// calendar event ids of the removed tasks.
func (r *projectRepository) Delete(ctx context.Context, id, userID uuid.UUID) ([]string, error) {
	db := r.db.WithContext(ctx)
	goalIDs := func() *gorm.DB {
		return db.Table("goals").Select("id").Where("project_id = ? AND user_id = ?", id, userID)
	}

	var eventIDs []string
	err := db.Table("tasks").
		Where("goal_id IN (?) AND google_calendar_event_id IS NOT NULL AND google_calendar_event_id <> ''", goalIDs()).
		Pluck("google_calendar_event_id", &eventIDs).Error
	if err != nil {
		return nil, err
	}

	if err := db.Exec("DELETE FROM tasks WHERE goal_id IN (?)", goalIDs()).Error; err != nil {
		return nil, fmt.Errorf("delete project tasks: %w", err)
	}
	if err := db.Exec("DELETE FROM goals WHERE project_id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, fmt.Errorf("delete project goals: %w", err)
	}

	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&Project{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("Project", id)
	}
	return eventIDs, nil
}
