package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(ctx context.Context, g *Goal) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Goal, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	FindAllByProject(ctx context.Context, projectID, userID uuid.UUID) ([]Goal, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id, userID uuid.UUID) ([]string, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, g *Goal) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *goalRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Goal", id)
		}
		return nil, err
	}
	return &g, nil
}

func (r *goalRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) FindAllByProject(ctx context.Context, projectID, userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepository) Update(ctx context.Context, g *Goal) error {
	if err := r.db.WithContext(ctx).Save(g).Error; err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return nil
}

// Delete removes the goal and its tasks, returning the calendar event ids of
// the removed tasks.
func (r *goalRepository) Delete(ctx context.Context, id, userID uuid.UUID) ([]string, error) {
	db := r.db.WithContext(ctx)
	owned := func() *gorm.DB {
		return db.Table("goals").Select("id").Where("id = ? AND user_id = ?", id, userID)
	}

	var eventIDs []string
	err := db.Table("tasks").
		Where("goal_id IN (?) AND google_calendar_event_id IS NOT NULL AND google_calendar_event_id <> ''", owned()).
		Pluck("google_calendar_event_id", &eventIDs).Error
	if err != nil {
		return nil, err
	}

	if err := db.Exec("DELETE FROM tasks WHERE goal_id IN (?)", owned()).Error; err != nil {
		return nil, fmt.Errorf("delete goal tasks: %w", err)
	}

	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&Goal{})
	if res.Error != nil {
		return nil, fmt.Errorf("delete goal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("Goal", id)
	}
	return eventIDs, nil
}
