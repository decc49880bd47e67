package concepts

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// Authing manages account registration and password authentication.
type Authing struct {
	users *repositories.UserRepository
	cost  int
}

// NewAuthing creates an Authing concept with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to the library default.
func NewAuthing(users *repositories.UserRepository, cost int) *Authing {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Authing{users: users, cost: cost}
}

// Register creates a new account. Usernames are unique; registering a taken
// username fails with [shared.ErrConflict].
func (a *Authing) Register(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", shared.ErrInvalidInput)
	}

	if _, err := a.users.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("username %q: %w", username, shared.ErrConflict)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(0, username, string(hash))
	if err := a.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a username/password pair and returns the matching
// user. Unknown usernames and wrong passwords both fail with
// [shared.ErrInvalidCredentials] so callers can't distinguish them.
func (a *Authing) Authenticate(username, password string) (*models.User, error) {
	user, err := a.users.GetByUsername(username)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	return user, nil
}

// UpdateUsername changes a user's username, enforcing uniqueness.
func (a *Authing) UpdateUsername(userID, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", shared.ErrInvalidInput)
	}

	if existing, err := a.users.GetByUsername(username); err == nil && existing.ID() != userID {
		return nil, fmt.Errorf("username %q: %w", username, shared.ErrConflict)
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := a.users.Get(userID)
	if err != nil {
		return nil, err
	}

	user.SetUsername(username)
	if err := a.users.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePassword replaces a user's password hash.
func (a *Authing) UpdatePassword(userID, password string) error {
	if password == "" {
		return fmt.Errorf("password is required: %w", shared.ErrInvalidInput)
	}

	user, err := a.users.Get(userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.SetPasswordHash(string(hash))
	return a.users.Update(user)
}

// Get retrieves a user by id.
func (a *Authing) Get(userID string) (*models.User, error) {
	return a.users.Get(userID)
}

// GetByUsername retrieves a user by username.
func (a *Authing) GetByUsername(username string) (*models.User, error) {
	return a.users.GetByUsername(username)
}

// Delete soft-deletes an account.
func (a *Authing) Delete(userID string) error {
	return a.users.Delete(userID)
}
