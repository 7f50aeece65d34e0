package habit

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/recurrence"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"gorm.io/gorm"
)

// Habit is a recurring routine that tracks how many times in a row it was
// completed on schedule.
type Habit struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	recurrence.Item `gorm:"embedded"`

	StreakCount int       `gorm:"not null;default:0" json:"streak_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Complete updates the streak against the previous completion, then
// schedules the next occurrence.
func (h *Habit) Complete(on util.LocalDate) error {
	streak, err := recurrence.NextStreak(h.FrequencyType, h.FrequencyValue, h.StreakCount, h.LastCompletedDate, on)
	if err != nil {
		return err
	}
	if err := h.Item.Complete(on); err != nil {
		return err
	}
	h.StreakCount = streak
	return nil
}
