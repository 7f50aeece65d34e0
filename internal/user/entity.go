package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username                    string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword              string    `gorm:"not null" json:"-"`
	IsActive                    bool      `gorm:"not null;default:true" json:"is_active"`
	EncryptedGoogleAccessToken  string    `json:"-"`
	EncryptedGoogleRefreshToken string    `json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) HasCalendar() bool {
	return u.EncryptedGoogleAccessToken != ""
}
