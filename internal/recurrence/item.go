package recurrence

import (
	"strings"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	util "github.com/saulo-duarte/chronos-planner/internal/utils"
)

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) IsValid() bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

// Item is the schedule shared by chores and habits. It is embedded into their
// gorm models.
type Item struct {
	Name              string              `gorm:"size:255;not null" json:"name"`
	Description       *string             `gorm:"size:1000" json:"description"`
	StartTime         *util.LocalDateTime `gorm:"type:timestamp" json:"start_time"`
	EndTime           *util.LocalDateTime `gorm:"type:timestamp" json:"end_time"`
	EtaHours          *float64            `json:"eta_hours"`
	Status            Status              `gorm:"size:32;not null;default:'Not Started'" json:"status"`
	FrequencyType     FrequencyType       `gorm:"size:16;not null" json:"frequency_type"`
	FrequencyValue    int                 `gorm:"not null;default:1" json:"frequency_value"`
	NextDueDate       util.LocalDate      `gorm:"type:date;not null;index" json:"next_due_date"`
	LastCompletedDate *util.LocalDate     `gorm:"type:date" json:"last_completed_date"`
}

// Validate checks the cross-field rules that JSON Schema cannot express.
func (it *Item) Validate() error {
	var verr *apperror.ValidationError

	if strings.TrimSpace(it.Name) == "" {
		verr = verr.Add("name", it.Name, "must not be empty")
	}
	if !it.Status.IsValid() {
		verr = verr.Add("status", it.Status, "must be one of Not Started, In Progress, Completed")
	}
	if !it.FrequencyType.IsValid() {
		verr = verr.Add("frequency_type", it.FrequencyType, "must be one of daily, weekly, biweekly, monthly, custom")
	}
	if it.FrequencyValue <= 0 {
		verr = verr.Add("frequency_value", it.FrequencyValue, "must be greater than 0")
	} else if it.FrequencyType != Custom && it.FrequencyValue != 1 {
		verr = verr.Add("frequency_value", it.FrequencyValue, "must be 1 for non-custom frequency types")
	}
	if it.EtaHours != nil && *it.EtaHours <= 0 {
		verr = verr.Add("eta_hours", *it.EtaHours, "must be greater than 0")
	}
	if it.StartTime != nil && it.EndTime != nil && !it.EndTime.After(it.StartTime.Time) {
		verr = verr.Add("end_time", it.EndTime, "must be after start_time")
	}
	if it.NextDueDate.IsZero() {
		verr = verr.Add("next_due_date", nil, "is required")
	}

	return verr.OrNil()
}

// Complete records a completion and schedules the next occurrence. The item
// goes back to Not Started since it recurs.
func (it *Item) Complete(on util.LocalDate) error {
	next, err := NextDueDate(it.FrequencyType, it.FrequencyValue, on)
	if err != nil {
		return err
	}
	completed := on
	it.LastCompletedDate = &completed
	it.NextDueDate = next
	it.Status = StatusNotStarted
	return nil
}
