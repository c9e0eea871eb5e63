package chats

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles chat and message database operations
type Repository struct {
	db *pgxpool.Pool
}

// Chat is one copywriting conversation owned by a single user
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message belongs to exactly one chat
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
