package repository

import (
	"context"

	"learnit/internal/domain"
)

// PostRepository exposes owner-scoped persistence for posts.
//
// UpdateOwned and DeleteOwned must match on (id, ownerID) and mutate in a
// single atomic store operation. A missing post and a post owned by someone
// else both yield ErrNotFound.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error)
	UpdateOwned(ctx context.Context, id, ownerID string, changes domain.PostChanges) (*domain.Post, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Post, error)
}
