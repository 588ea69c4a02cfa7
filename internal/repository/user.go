package repository

import (
	"context"
	"errors"

	"learnit/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the lookup or filter.
	ErrNotFound = errors.New("record not found")
	// ErrUserExists is returned when the username uniqueness constraint rejects an insert.
	ErrUserExists = errors.New("user already exists")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
