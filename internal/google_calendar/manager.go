package googlecalendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/config"
)

type CalendarManager interface {
	SyncTask(ctx context.Context, userID uuid.UUID, task *CalendarTask) (eventID string, err error)
	RemoveTask(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarManager struct {
	calendarService CalendarService
}

func NewCalendarManager(calendarService CalendarService) CalendarManager {
	return &calendarManager{
		calendarService: calendarService,
	}
}

// SyncTask creates, updates or deletes the event for task and returns the
// event id the task should keep. Users without linked tokens are skipped.
func (m *calendarManager) SyncTask(ctx context.Context, userID uuid.UUID, task *CalendarTask) (string, error) {
	log := config.WithContext(ctx)

	hasEventID := task.GoogleCalendarEventID != nil && *task.GoogleCalendarEventID != ""

	if hasEventID && !task.HasTimes() {
		log.Infof("Task %s no longer has a time block, deleting calendar event", task.ID)
		if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, *task.GoogleCalendarEventID); err != nil {
			log.WithError(err).Warnf("Failed to delete calendar event for task %s", task.ID)
			return *task.GoogleCalendarEventID, err
		}
		return "", nil
	}

	if !task.HasTimes() {
		return "", nil
	}

	if hasEventID {
		if err := m.calendarService.UpdateEventInCalendar(ctx, userID, task); err != nil {
			if errors.Is(err, ErrMissingCalendarTokens) {
				return *task.GoogleCalendarEventID, nil
			}
			log.WithError(err).Warnf("Failed to update calendar event for task %s", task.ID)
			return *task.GoogleCalendarEventID, err
		}
		return *task.GoogleCalendarEventID, nil
	}

	eventID, err := m.calendarService.AddEventToCalendar(ctx, userID, task)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) {
			return "", nil
		}
		log.WithError(err).Warnf("Failed to create calendar event for task %s", task.ID)
		return "", err
	}

	if eventID == "" {
		log.Warnf("Calendar service returned empty event ID for task %s", task.ID)
		return "", nil
	}

	log.Infof("Created calendar event %s for task %s", eventID, task.ID)
	return eventID, nil
}

func (m *calendarManager) RemoveTask(ctx context.Context, userID uuid.UUID, eventID string) error {
	if eventID == "" {
		return nil
	}

	if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, eventID); err != nil {
		config.WithContext(ctx).WithError(err).Warnf("Failed to delete calendar event %s", eventID)
		return err
	}
	return nil
}
