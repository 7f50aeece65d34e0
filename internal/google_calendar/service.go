package googlecalendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const primaryCalendar = "primary"

var (
	ErrUserNotFound          = errors.New("user not found for calendar integration")
	ErrDecryptionFailed      = errors.New("failed to decrypt user's google token")
	ErrMissingCalendarTokens = errors.New("user has no google access token")
	ErrMissingEventID        = errors.New("cannot update event: missing Google Calendar event id")
)

type CalendarService interface {
	AddEventToCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) (string, error)
	UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) error
	DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error
}

type calendarService struct {
	userRepo    user.UserRepository
	oauthConfig *oauth2.Config
	endpoint    string
}

type Option func(*calendarService)

// WithEndpoint points the Calendar client at another base URL.
func WithEndpoint(endpoint string) Option {
	return func(s *calendarService) {
		s.endpoint = endpoint
	}
}

func NewCalendarService(userRepo user.UserRepository, oauthConfig *oauth2.Config, opts ...Option) CalendarService {
	s := &calendarService{
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *calendarService) getCalendarClient(ctx context.Context, userID uuid.UUID) (*gcal.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.GetByID(ctx, userID.String())
	if err != nil {
		log.WithError(err).Error("Failed to retrieve user for calendar client")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !u.HasCalendar() {
		return nil, ErrMissingCalendarTokens
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptionFailed
	}

	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
	if u.EncryptedGoogleRefreshToken != "" {
		refreshToken, err := config.Decrypt(u.EncryptedGoogleRefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptionFailed
		}
		token.RefreshToken = refreshToken
		token.Expiry = time.Now().Add(-time.Hour)
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	current, err := tokenSource.Token()
	if err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	if current.AccessToken != accessToken {
		s.persistAccessToken(ctx, u, current.AccessToken)
	}

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, tokenSource))}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}

	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}
	return srv, nil
}

func (s *calendarService) persistAccessToken(ctx context.Context, u *user.User, accessToken string) {
	log := config.WithContext(ctx)

	encrypted, err := config.Encrypt(accessToken)
	if err != nil {
		log.WithError(err).Warn("Failed to encrypt refreshed Google token")
		return
	}
	u.EncryptedGoogleAccessToken = encrypted
	if err := s.userRepo.Update(ctx, u); err != nil {
		log.WithError(err).Warn("Failed to persist refreshed Google token")
	}
}

// buildCalendarEvent returns nil when the task has no usable time block. A
// task with only an end time gets a one hour event ending there.
func buildCalendarEvent(task *CalendarTask) *gcal.Event {
	event := &gcal.Event{
		Summary:     task.Name,
		Description: task.Description,
		Reminders: &gcal.EventReminders{
			UseDefault: false,
		},
	}

	if task.EndTime != nil {
		event.End = &gcal.EventDateTime{
			DateTime: task.EndTime.Format(time.RFC3339),
		}
		if task.StartTime == nil {
			event.Start = &gcal.EventDateTime{
				DateTime: task.EndTime.Add(-time.Hour).Format(time.RFC3339),
			}
		}
	}

	if task.StartTime != nil {
		event.Start = &gcal.EventDateTime{
			DateTime: task.StartTime.Format(time.RFC3339),
		}
		if task.EndTime == nil {
			event.End = &gcal.EventDateTime{
				DateTime: task.StartTime.Add(time.Hour).Format(time.RFC3339),
			}
		}
	}

	if event.Start == nil || event.End == nil {
		return nil
	}
	return event
}

func (s *calendarService) AddEventToCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) (string, error) {
	log := config.WithContext(ctx)

	event := buildCalendarEvent(task)
	if event == nil {
		log.Warnf("Task %s has no valid times to create a calendar event", task.ID)
		return "", nil
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return "", err
	}

	calEvent, err := srv.Events.Insert(primaryCalendar, event).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to insert calendar event")
		return "", err
	}
	return calEvent.Id, nil
}

func (s *calendarService) UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, task *CalendarTask) error {
	log := config.WithContext(ctx)
	if task.GoogleCalendarEventID == nil || *task.GoogleCalendarEventID == "" {
		return ErrMissingEventID
	}

	event := buildCalendarEvent(task)
	if event == nil {
		log.Warnf("Task %s no longer has valid times, deleting calendar event", task.ID)
		return s.DeleteEventFromCalendar(ctx, userID, *task.GoogleCalendarEventID)
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := srv.Events.Update(primaryCalendar, *task.GoogleCalendarEventID, event).Context(ctx).Do(); err != nil {
		log.WithError(err).Error("Failed to update calendar event")
		return err
	}
	return nil
}

func (s *calendarService) DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error {
	log := config.WithContext(ctx)
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrDecryptionFailed) {
			log.Warnf("Skipping Google Calendar deletion for event %s due to missing/invalid token", googleEventID)
			return nil
		}
		return err
	}

	err = srv.Events.Delete(primaryCalendar, googleEventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			log.Warnf("Calendar event %s not found on Google, considering deleted", googleEventID)
			return nil
		}
		log.WithError(err).Error("Failed to delete calendar event")
		return err
	}
	return nil
}
