package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/validation"
)

type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LinkCalendarDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	IsActive          bool      `json:"is_active"`
	CalendarConnected bool      `json:"calendar_connected"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		IsActive:          u.IsActive,
		CalendarConnected: u.HasCalendar(),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

var registerSchema = validation.MustCompile("user_register", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["username", "email", "password"],
	"properties": {
		"username": {"type": "string", "minLength": 3, "maxLength": 50, "pattern": "^[A-Za-z0-9_.-]+$"},
		"email": {"type": "string", "maxLength": 255, "pattern": "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$"},
		"password": {"type": "string", "minLength": 8, "maxLength": 128}
	}
}`)

var loginSchema = validation.MustCompile("user_login", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["username", "password"],
	"properties": {
		"username": {"type": "string", "minLength": 1},
		"password": {"type": "string", "minLength": 1}
	}
}`)

var linkCalendarSchema = validation.MustCompile("user_link_calendar", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["access_token"],
	"properties": {
		"access_token": {"type": "string", "minLength": 1},
		"refresh_token": {"type": "string"}
	}
}`)
