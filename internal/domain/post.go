package domain

import "time"

const (
	PostStatusToLearn  = "TO LEARN"
	PostStatusLearning = "LEARNING"
	PostStatusLearned  = "LEARNED"
)

// Post is a learning resource tracked by its owner.
type Post struct {
	ID          string
	Title       string
	Description string
	URL         string
	Status      string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner is only populated on listings.
	Owner *User
}

// PostChanges holds the replaceable fields of a post.
type PostChanges struct {
	Title       string
	Description string
	URL         string
	Status      string
}
