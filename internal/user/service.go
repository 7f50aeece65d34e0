package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", apperror.ErrUnauthenticated)

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	RefreshToken(ctx context.Context) (*TokenResponse, error)
	Me(ctx context.Context) (*UserResponse, error)
	LinkCalendar(ctx context.Context, dto LinkCalendarDTO) (*UserResponse, error)
}

type userService struct {
	repo     UserRepository
	tokenTTL time.Duration
}

func NewUserService(repo UserRepository, tokenTTL time.Duration) UserService {
	return &userService{repo: repo, tokenTTL: tokenTTL}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	username := strings.TrimSpace(dto.Username)
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	for column, value := range map[string]string{"username": username, "email": email} {
		exists, err := s.repo.ExistsBy(ctx, column, value)
		if err != nil {
			log.WithError(err).Error("Failed to check user uniqueness")
			return nil, err
		}
		if exists {
			return nil, &apperror.ConflictError{Field: column, Message: column + " already registered"}
		}
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("new_user_id", u.ID).Info("User registered successfully")
	return toResponse(u), nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(dto.Username))
	if err != nil {
		log.WithError(err).Error("Failed to load user for login")
		return nil, err
	}
	if u == nil || !auth.CheckPassword(dto.Password, u.HashedPassword) {
		log.WithField("username", dto.Username).Warn("Invalid login attempt")
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, &apperror.UnauthorizedError{UserID: u.ID.String(), Resource: "User", ID: u.ID.String()}
	}

	return s.issue(u.ID.String())
}

func (s *userService) RefreshToken(ctx context.Context) (*TokenResponse, error) {
	u, err := s.current(ctx, "refresh token")
	if err != nil {
		return nil, err
	}
	return s.issue(u.ID.String())
}

func (s *userService) Me(ctx context.Context) (*UserResponse, error) {
	u, err := s.current(ctx, "get current user")
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

func (s *userService) LinkCalendar(ctx context.Context, dto LinkCalendarDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)
	u, err := s.current(ctx, "link calendar")
	if err != nil {
		return nil, err
	}

	access, err := config.Encrypt(dto.AccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to encrypt Google access token")
		return nil, err
	}
	u.EncryptedGoogleAccessToken = access

	if dto.RefreshToken != "" {
		refresh, err := config.Encrypt(dto.RefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt Google refresh token")
			return nil, err
		}
		u.EncryptedGoogleRefreshToken = refresh
	}

	if err := s.repo.Update(ctx, u); err != nil {
		log.WithError(err).Error("Failed to store Google tokens")
		return nil, err
	}

	log.Info("Google Calendar linked")
	return toResponse(u), nil
}

func (s *userService) current(ctx context.Context, action string) (*User, error) {
	log := config.WithContext(ctx)
	userID, err := auth.CurrentUserID(ctx)
	if err != nil {
		log.Warnf("Attempt to %s without authentication", action)
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID.String())
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		return nil, err
	}
	if u == nil {
		log.WithFields(logrus.Fields{"action": action}).Warn("Token refers to a missing user")
		return nil, apperror.ErrUnauthenticated
	}
	if !u.IsActive {
		return nil, &apperror.UnauthorizedError{UserID: u.ID.String(), Resource: "User", ID: u.ID.String()}
	}
	return u, nil
}

func (s *userService) issue(userID string) (*TokenResponse, error) {
	token, err := auth.GenerateJWT(userID, auth.RoleUser, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
