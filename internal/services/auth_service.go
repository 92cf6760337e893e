package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/vergaracl/fitfam/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPIN      = errors.New("PIN must be 4 to 8 digits")
	ErrWrongPIN        = errors.New("wrong PIN")
	ErrUnknownMember   = errors.New("unknown family member")
	ErrAuthStoreFailed = errors.New("auth store failed")
)

var pinPattern = regexp.MustCompile(`^\d{4,8}$`)

type AuthUserStore interface {
	FindByID(userID string) (models.User, bool, error)
	UpdateByID(userID string, updates map[string]any) error
}

// AuthService is the PIN gate. This is a family convenience lock, not a
// security boundary: the first login for a member stores their PIN, later
// logins verify it.
type AuthService struct {
	users AuthUserStore
}

func NewAuthService(users AuthUserStore) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) Login(userID string, pin string) (models.User, error) {
	if !pinPattern.MatchString(pin) {
		return models.User{}, ErrInvalidPIN
	}

	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthStoreFailed, err)
	}
	if !found {
		return models.User{}, ErrUnknownMember
	}

	if user.PINHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("%w: %v", ErrAuthStoreFailed, err)
		}
		if err := service.users.UpdateByID(user.ID, map[string]any{"pin_hash": string(hash)}); err != nil {
			return models.User{}, fmt.Errorf("%w: %v", ErrAuthStoreFailed, err)
		}
		user.PINHash = string(hash)
		return user, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)); err != nil {
		return models.User{}, ErrWrongPIN
	}
	return user, nil
}

func (service *AuthService) FindByID(userID string) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthStoreFailed, err)
	}
	if !found {
		return models.User{}, ErrUnknownMember
	}
	return user, nil
}
