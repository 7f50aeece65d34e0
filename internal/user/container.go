package user

import (
	"time"

	"gorm.io/gorm"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, tokenTTL time.Duration, cookieDomain string) *UserContainer {
	repo := NewUserRepository(db)
	service := NewUserService(repo, tokenTTL)
	handler := NewHandler(service, cookieDomain)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
