package domain

import "time"

// User represents a registered user.
type User struct {
	ID                string
	GoogleID          string
	Email             string
	Name              string
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// Friend is an accepted friendship edge from one user to another.
type Friend struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	FriendID string    `json:"friend_id"`
	Status   string    `json:"status"`
	AddedAt  time.Time `json:"added_at"`
}
