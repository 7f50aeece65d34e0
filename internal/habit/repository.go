package habit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"gorm.io/gorm"
)

type HabitRepository interface {
	Create(ctx context.Context, hb *Habit) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Habit, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Habit, error)
	ListDue(ctx context.Context, userID uuid.UUID, on util.LocalDate) ([]Habit, error)
	Update(ctx context.Context, hb *Habit) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type habitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, hb *Habit) error {
	if err := r.db.WithContext(ctx).Create(hb).Error; err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

func (r *habitRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Habit, error) {
	var hb Habit
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&hb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Habit", id)
		}
		return nil, err
	}
	return &hb, nil
}

func (r *habitRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Habit, error) {
	var habits []Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_due_date ASC").
		Find(&habits).Error
	return habits, err
}

// ListDue returns the habits due on or before the given day.
func (r *habitRepository) ListDue(ctx context.Context, userID uuid.UUID, on util.LocalDate) ([]Habit, error) {
	var habits []Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND next_due_date <= ?", userID, on).
		Order("next_due_date ASC").
		Find(&habits).Error
	return habits, err
}

func (r *habitRepository) Update(ctx context.Context, hb *Habit) error {
	if err := r.db.WithContext(ctx).Save(hb).Error; err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return nil
}

func (r *habitRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Habit{})
	if res.Error != nil {
		return fmt.Errorf("delete habit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Habit", id)
	}
	return nil
}
