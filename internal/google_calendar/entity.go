package googlecalendar

import (
	"time"

	"github.com/google/uuid"
)

// CalendarTask is the part of a task mirrored into Google Calendar.
type CalendarTask struct {
	ID                    uuid.UUID
	Name                  string
	Description           string
	StartTime             *time.Time
	EndTime               *time.Time
	GoogleCalendarEventID *string
}

func (t *CalendarTask) HasTimes() bool {
	return t.StartTime != nil || t.EndTime != nil
}
