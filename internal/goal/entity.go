package goal

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"gorm.io/gorm"
)

type Goal struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *project.Project `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string           `gorm:"size:255;not null" json:"name"`
	Description *string          `gorm:"size:1000" json:"description"`
	WeeklyHours float64          `gorm:"not null" json:"weekly_hours"`
	StartDate   util.LocalDate   `gorm:"type:date;not null" json:"start_date"`
	EndDate     *util.LocalDate  `gorm:"type:date" json:"end_date"`
	Status      project.Status   `gorm:"size:32;not null;default:'Not Started'" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (g *Goal) Validate() error {
	var verr *apperror.ValidationError

	if strings.TrimSpace(g.Name) == "" {
		verr = verr.Add("name", g.Name, "must not be empty")
	}
	verr = project.ValidateWeeklyHours(verr, g.WeeklyHours)
	if !g.Status.IsValid() {
		verr = verr.Add("status", g.Status, "must be one of Not Started, In Progress, Completed")
	}
	verr = project.ValidateDateRange(verr, g.StartDate, g.EndDate)

	return verr.OrNil()
}
