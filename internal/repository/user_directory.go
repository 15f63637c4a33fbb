package repository

import (
	"context"
	"errors"
	"time"

	"simplecrud/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserDirectory is the fixed in-memory user collection. It is seeded once at
// construction and read-only afterwards, so lookups need no locking.
type UserDirectory struct {
	users []models.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: seedUsers()}
}

func seedUsers() []models.User {
	return []models.User{
		{
			ID:        1,
			Email:     "user@example.com",
			CreatedAt: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
			LastLogin: time.Date(2026, time.February, 1, 10, 30, 0, 0, time.UTC),
		},
	}
}

func (d *UserDirectory) GetByID(ctx context.Context, id int) (models.User, error) {
	for _, user := range d.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range d.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// List returns a copy so callers cannot mutate the seed slice.
func (d *UserDirectory) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, len(d.users))
	copy(out, d.users)
	return out, nil
}
