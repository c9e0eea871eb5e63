package auth

import "codeberg.org/copyforge/server/copyforge/users"

// AuthResponse is returned after a successful OAuth callback
type AuthResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// UserResponse wraps the authenticated user's account data
type UserResponse struct {
	User *users.User `json:"user"`
}
