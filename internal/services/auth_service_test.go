package services

import (
	"errors"
	"testing"

	"github.com/vergaracl/fitfam/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type fakeAuthStore struct {
	users map[string]*models.User
}

func newFakeAuthStore(ids ...string) *fakeAuthStore {
	store := &fakeAuthStore{users: map[string]*models.User{}}
	for _, id := range ids {
		store.users[id] = &models.User{ID: id, Name: id}
	}
	return store
}

func (store *fakeAuthStore) FindByID(userID string) (models.User, bool, error) {
	if user, ok := store.users[userID]; ok {
		return *user, true, nil
	}
	return models.User{}, false, nil
}

func (store *fakeAuthStore) UpdateByID(userID string, updates map[string]any) error {
	user, ok := store.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	if hash, ok := updates["pin_hash"].(string); ok {
		user.PINHash = hash
	}
	return nil
}

func TestLoginFirstTimeSetsPIN(t *testing.T) {
	store := newFakeAuthStore("javi")
	service := NewAuthService(store)

	user, err := service.Login("javi", "4321")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if user.PINHash == "" {
		t.Fatal("first login must store a PIN hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.users["javi"].PINHash), []byte("4321")); err != nil {
		t.Fatalf("stored hash does not match the PIN: %v", err)
	}

	if _, err := service.Login("javi", "4321"); err != nil {
		t.Fatalf("second login with the right PIN failed: %v", err)
	}
	if _, err := service.Login("javi", "9999"); !errors.Is(err, ErrWrongPIN) {
		t.Fatalf("error = %v, want ErrWrongPIN", err)
	}
}

func TestLoginRejections(t *testing.T) {
	service := NewAuthService(newFakeAuthStore("javi"))

	for _, pin := range []string{"", "123", "123456789", "abcd", "12 34"} {
		if _, err := service.Login("javi", pin); !errors.Is(err, ErrInvalidPIN) {
			t.Fatalf("Login with pin %q: error = %v, want ErrInvalidPIN", pin, err)
		}
	}

	if _, err := service.Login("stranger", "1234"); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("error = %v, want ErrUnknownMember", err)
	}
}
