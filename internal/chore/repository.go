package chore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"gorm.io/gorm"
)

type ChoreRepository interface {
	Create(ctx context.Context, c *Chore) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Chore, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Chore, error)
	ListDue(ctx context.Context, userID uuid.UUID, on util.LocalDate) ([]Chore, error)
	Update(ctx context.Context, c *Chore) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type choreRepository struct {
	db *gorm.DB
}

func NewChoreRepository(db *gorm.DB) ChoreRepository {
	return &choreRepository{db: db}
}

func (r *choreRepository) Create(ctx context.Context, c *Chore) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create chore: %w", err)
	}
	return nil
}

func (r *choreRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*Chore, error) {
	var c Chore
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Chore", id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *choreRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Chore, error) {
	var chores []Chore
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_due_date ASC").
		Find(&chores).Error
	return chores, err
}

// ListDue returns the chores due on or before the given day.
func (r *choreRepository) ListDue(ctx context.Context, userID uuid.UUID, on util.LocalDate) ([]Chore, error) {
	var chores []Chore
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND next_due_date <= ?", userID, on).
		Order("next_due_date ASC").
		Find(&chores).Error
	return chores, err
}

func (r *choreRepository) Update(ctx context.Context, c *Chore) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("update chore: %w", err)
	}
	return nil
}

func (r *choreRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Chore{})
	if res.Error != nil {
		return fmt.Errorf("delete chore: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Chore", id)
	}
	return nil
}
