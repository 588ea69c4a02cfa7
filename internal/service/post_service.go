package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnit/internal/domain"
	"learnit/internal/repository"
)

const httpsScheme = "https://"

// PostInput carries the client-supplied post fields.
type PostInput struct {
	Title       string
	Description string
	URL         string
	Status      string
}

// PostService coordinates owner-scoped post operations.
type PostService interface {
	List(ctx context.Context, ownerID string) ([]domain.Post, error)
	Create(ctx context.Context, ownerID string, in PostInput) (*domain.Post, error)
	Update(ctx context.Context, ownerID, id string, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.Post, error)
}

type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository) PostService {
	return &postService{
		posts: posts,
		users: users,
	}
}

// List returns the owner's posts, each carrying the owner's public profile.
func (s *postService) List(ctx context.Context, ownerID string) ([]domain.Post, error) {
	posts, err := s.posts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	switch {
	case err == nil:
		public := sanitizeUser(owner)
		for i := range posts {
			posts[i].Owner = public
		}
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup owner: %w", err)
	}
	return posts, nil
}

// Create stores a post for ownerID, which must name an existing user.
func (s *postService) Create(ctx context.Context, ownerID string, in PostInput) (*domain.Post, error) {
	changes, err := normalizePost(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("lookup owner: %w", err)
	}

	post := &domain.Post{
		Title:       changes.Title,
		Description: changes.Description,
		URL:         changes.URL,
		Status:      changes.Status,
		OwnerID:     ownerID,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update fully replaces the post's fields when ownerID owns it.
func (s *postService) Update(ctx context.Context, ownerID, id string, in PostInput) (*domain.Post, error) {
	changes, err := normalizePost(in)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.UpdateOwned(ctx, id, ownerID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Delete removes the post when ownerID owns it and returns what was removed.
func (s *postService) Delete(ctx context.Context, ownerID, id string) (*domain.Post, error) {
	post, err := s.posts.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func normalizePost(in PostInput) (domain.PostChanges, error) {
	if in.Title == "" {
		return domain.PostChanges{}, ErrTitleRequired
	}
	status := in.Status
	if status == "" {
		status = domain.PostStatusToLearn
	}
	return domain.PostChanges{
		Title:       in.Title,
		Description: in.Description,
		URL:         NormalizeURL(in.URL),
		Status:      status,
	}, nil
}

// NormalizeURL prefixes the https scheme unless it is already there.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, httpsScheme) {
		return raw
	}
	return httpsScheme + raw
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
