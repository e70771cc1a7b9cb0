// Package session keeps the signed-in user of this device.
//
// The user record lives in on-device storage under StorageKey: read once at
// startup, written on login/signup, deleted on logout. Login and signup are
// simulated and complete after a fixed delay.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"foodie-storefront/models"
	"foodie-storefront/timed"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// StorageKey is the fixed key of the persisted session record
const StorageKey = "foodapp_user"

var (
	ErrNoSession      = errors.New("no active session")
	ErrInvalidProfile = errors.New("invalid profile")
)

// Storage is the on-device key/value storage
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Delays are the simulated backend latencies
type Delays struct {
	Login  time.Duration
	Signup time.Duration
}

type credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"min=6"`
}

type signupCredentials struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"min=6"`
}

// ProfileUpdate carries the editable profile fields
type ProfileUpdate struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Store struct {
	storage  Storage
	validate *validator.Validate
	delays   Delays

	mu   sync.RWMutex
	user *models.User
}

func NewStore(storage Storage, delays Delays) *Store {
	return &Store{
		storage:  storage,
		validate: validator.New(),
		delays:   delays,
	}
}

// Load restores a previously persisted session. A corrupt record is dropped.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
		if err := s.storage.Delete(ctx, StorageKey); err != nil {
			return fmt.Errorf("drop corrupt session: %w", err)
		}
		return nil
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Login completes with false when email is empty or the password is shorter
// than 6 characters; nothing changes in that case.
func (s *Store) Login(ctx context.Context, email, password string) *timed.Task[bool] {
	ctx = context.WithoutCancel(ctx)
	return timed.After(s.delays.Login, func() (bool, error) {
		in := credentials{Email: strings.TrimSpace(email), Password: password}
		if err := s.validate.Struct(in); err != nil {
			return false, nil
		}
		user := models.User{
			ID:    UserID(in.Email),
			Name:  strings.Split(in.Email, "@")[0],
			Email: in.Email,
		}
		if err := s.persist(ctx, user); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Signup behaves like Login but also requires a name
func (s *Store) Signup(ctx context.Context, name, email, password string) *timed.Task[bool] {
	ctx = context.WithoutCancel(ctx)
	return timed.After(s.delays.Signup, func() (bool, error) {
		in := signupCredentials{
			Name:     strings.TrimSpace(name),
			Email:    strings.TrimSpace(email),
			Password: password,
		}
		if err := s.validate.Struct(in); err != nil {
			return false, nil
		}
		user := models.User{ID: UserID(in.Email), Name: in.Name, Email: in.Email}
		if err := s.persist(ctx, user); err != nil {
			return false, err
		}
		return true, nil
	})
}

// UserID is stable per email address, so a user signing in again finds the
// orders placed under earlier sessions.
func UserID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String()
}

// Logout destroys the session; logging out twice is harmless
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Current returns a copy of the session user
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) Present() bool {
	_, ok := s.Current()
	return ok
}

// UpdateProfile edits the profile fields of the current session
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) (models.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	if err := s.validate.Struct(update); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	user, ok := s.Current()
	if !ok {
		return models.User{}, ErrNoSession
	}
	user.Name = update.Name
	user.Phone = strings.TrimSpace(update.Phone)
	user.Address = strings.TrimSpace(update.Address)
	if err := s.persist(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) persist(ctx context.Context, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, string(raw)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}
