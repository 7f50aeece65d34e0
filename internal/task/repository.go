package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
	ListByGoalAndUser(ctx context.Context, goalID, userID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, t *Task) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Task", id)
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListByGoalAndUser(ctx context.Context, goalID, userID uuid.UUID) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("goal_id = ? AND user_id = ?", goalID, userID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, t *Task) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *taskRepository) SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	return r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ?", id).
		Update("google_calendar_event_id", eventID).Error
}

func (r *taskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Task", id)
	}
	return nil
}
