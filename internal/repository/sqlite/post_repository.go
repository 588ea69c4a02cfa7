package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"learnit/internal/domain"
	"learnit/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	user_id TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
`

const postColumns = `id, title, description, url, status, user_id, created_at, updated_at`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (`+postColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		post.Title,
		post.Description,
		post.URL,
		post.Status,
		post.OwnerID,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	post.UpdatedAt = now
	return id, nil
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+postColumns+`
FROM posts
WHERE user_id = ?
ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	return posts, rows.Err()
}

// UpdateOwned replaces the mutable fields in one conditional statement.
func (r *PostRepository) UpdateOwned(ctx context.Context, id, ownerID string, changes domain.PostChanges) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE posts
SET title=?, description=?, url=?, status=?, updated_at=?
WHERE id=? AND user_id=?
RETURNING `+postColumns,
		changes.Title,
		changes.Description,
		changes.URL,
		changes.Status,
		time.Now().UTC(),
		id,
		ownerID,
	)
	post, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return post, nil
}

// DeleteOwned removes the post in one conditional statement and returns its prior state.
func (r *PostRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
DELETE FROM posts
WHERE id=? AND user_id=?
RETURNING `+postColumns,
		id,
		ownerID,
	)
	post, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("delete post %s: %w", id, err)
	}
	return post, nil
}

func scanPost(scanner interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var (
		post      domain.Post
		createdAt dbTime
		updatedAt dbTime
	)

	if err := scanner.Scan(
		&post.ID,
		&post.Title,
		&post.Description,
		&post.URL,
		&post.Status,
		&post.OwnerID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	post.CreatedAt = createdAt.Time
	post.UpdatedAt = updatedAt.Time
	return &post, nil
}
