package project

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"gorm.io/gorm"
)

// MaxWeeklyHours is the number of hours in a week.
const MaxWeeklyHours = 168

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *user.User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"size:1000" json:"description"`
	WeeklyHours float64         `gorm:"not null" json:"weekly_hours"`
	StartDate   util.LocalDate  `gorm:"type:date;not null" json:"start_date"`
	EndDate     *util.LocalDate `gorm:"type:date" json:"end_date"`
	Status      Status          `gorm:"size:32;not null;default:'Not Started'" json:"status"`
	Color       string          `gorm:"size:7;not null" json:"color"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Project) Validate() error {
	var verr *apperror.ValidationError

	if strings.TrimSpace(p.Name) == "" {
		verr = verr.Add("name", p.Name, "must not be empty")
	}
	verr = ValidateWeeklyHours(verr, p.WeeklyHours)
	if !p.Status.IsValid() {
		verr = verr.Add("status", p.Status, "must be one of Not Started, In Progress, Completed")
	}
	if !colorPattern.MatchString(p.Color) {
		verr = verr.Add("color", p.Color, "must be a hex color like #1A2B3C")
	}
	verr = ValidateDateRange(verr, p.StartDate, p.EndDate)

	return verr.OrNil()
}

// ValidateWeeklyHours records a violation unless 0 < hours <= 168.
func ValidateWeeklyHours(verr *apperror.ValidationError, hours float64) *apperror.ValidationError {
	if hours <= 0 || hours > MaxWeeklyHours {
		return verr.Add("weekly_hours", hours, "must be greater than 0 and at most 168")
	}
	return verr
}

func ValidateDateRange(verr *apperror.ValidationError, start util.LocalDate, end *util.LocalDate) *apperror.ValidationError {
	if start.IsZero() {
		verr = verr.Add("start_date", nil, "is required")
	}
	if end != nil && !end.IsZero() && !end.After(start) {
		verr = verr.Add("end_date", end.String(), "must be after start_date")
	}
	return verr
}
