package domain

import "time"

// User represents an account that owns posts.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
