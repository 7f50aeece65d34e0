package chore

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/recurrence"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	"gorm.io/gorm"
)

// Chore is a recurring maintenance item with no streak.
type Chore struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	recurrence.Item `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Chore) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
