package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"noteshare/model"
	"noteshare/repository"
	"noteshare/services"
	"noteshare/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	UsersRepo repository.UsersRepository
}

// CreateUser registers a new account. Conflict errors from the
// repository pass through untouched so the handler can answer 409 with
// the field that collided.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))

	if !utils.ValidatePassword(user.Password) {
		return errors.New("password must be at least 6 characters")
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}

	user.UserID = utils.GenerateUserID()
	user.Password = hashed
	user.CreatedAt = time.Now()

	return svc.UsersRepo.CreateUser(ctx, user)
}

// Authenticate resolves a username-or-email identifier and verifies the
// password. An unknown identifier and a wrong password both come back
// as ErrInvalidCredentials; the login response never says which.
func (svc *UserService) Authenticate(ctx context.Context, login, password string) (*model.User, error) {
	user, err := svc.UsersRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := services.VerifyPassword(user.Password, password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
