package domain

import "time"

// UserRegisteredEvent represents the payload for users.user.registered messages.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Email        string
	Country      string
	Role         string
	Active       bool
	RegisteredAt time.Time
	Metadata     map[string]any
}

// UserLoggedInEvent represents the payload for users.user.logged_in messages.
type UserLoggedInEvent struct {
	EventID    string
	UserID     string
	Email      string
	LoggedInAt time.Time
	IP         *string
	UserAgent  *string
	Metadata   map[string]any
}
