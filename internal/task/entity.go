package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	googlecalendar "github.com/saulo-duarte/chronos-planner/internal/google_calendar"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
	"gorm.io/gorm"
)

type Task struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	GoalID                uuid.UUID           `gorm:"type:uuid;not null;index" json:"goal_id"`
	Goal                  *goal.Goal          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name                  string              `gorm:"size:255;not null" json:"name"`
	Description           *string             `gorm:"size:1000" json:"description"`
	WeeklyHours           float64             `gorm:"not null" json:"weekly_hours"`
	StartTime             *util.LocalDateTime `gorm:"type:timestamp" json:"start_time"`
	EndTime               *util.LocalDateTime `gorm:"type:timestamp" json:"end_time"`
	EtaHours              *float64            `json:"eta_hours"`
	Status                project.Status      `gorm:"size:32;not null;default:'Not Started'" json:"status"`
	GoogleCalendarEventID string              `gorm:"size:255" json:"google_calendar_event_id,omitempty"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Task) Validate() error {
	var verr *apperror.ValidationError

	if strings.TrimSpace(t.Name) == "" {
		verr = verr.Add("name", t.Name, "must not be empty")
	}
	verr = project.ValidateWeeklyHours(verr, t.WeeklyHours)
	if !t.Status.IsValid() {
		verr = verr.Add("status", t.Status, "must be one of Not Started, In Progress, Completed")
	}
	if t.EtaHours != nil && *t.EtaHours <= 0 {
		verr = verr.Add("eta_hours", *t.EtaHours, "must be greater than 0")
	}
	if t.StartTime != nil && t.EndTime != nil && !t.EndTime.After(t.StartTime.Time) {
		verr = verr.Add("end_time", t.EndTime, "must be after start_time")
	}

	return verr.OrNil()
}

func (t *Task) hasTimeBlock() bool {
	return t.StartTime != nil || t.EndTime != nil
}

func (t *Task) calendarTask() *googlecalendar.CalendarTask {
	ct := &googlecalendar.CalendarTask{
		ID:        t.ID,
		Name:      t.Name,
		StartTime: util.ToTimePtr(t.StartTime),
		EndTime:   util.ToTimePtr(t.EndTime),
	}
	if t.Description != nil {
		ct.Description = *t.Description
	}
	if t.GoogleCalendarEventID != "" {
		eventID := t.GoogleCalendarEventID
		ct.GoogleCalendarEventID = &eventID
	}
	return ct
}
