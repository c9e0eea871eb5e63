package chats

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrChatNotFound = errors.New("chat not found")

// creates a new chat repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, userID, title, model string) (*Chat, error) {
	var chat Chat

	err := r.db.QueryRow(ctx, queryCreate, userID, title, model).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.Model,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &chat, nil
}

func (r *Repository) Get(ctx context.Context, chatID, userID string) (*Chat, error) {
	var chat Chat

	err := r.db.QueryRow(ctx, queryGet, chatID, userID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Title,
		&chat.Model,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChatNotFound
	}

	if err != nil {
		return nil, err
	}

	return &chat, nil
}

func (r *Repository) List(ctx context.Context, userID string) ([]Chat, error) {
	rows, err := r.db.Query(ctx, queryList, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var chats []Chat

	for rows.Next() {
		var c Chat

		err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Model, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}

		chats = append(chats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chats, nil
}

// deletes a chat; messages cascade at the database level
func (r *Repository) Delete(ctx context.Context, chatID, userID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, chatID, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrChatNotFound
	}

	return nil
}

// counts the user's non-deleted chats for the free-tier cap
func (r *Repository) CountActive(ctx context.Context, userID string) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCountActive, userID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// counts messages in a chat for the per-chat cap
func (r *Repository) CountMessages(ctx context.Context, chatID string) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCountMessages, chatID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) AppendMessage(ctx context.Context, chatID, role, content string) (*Message, error) {
	var msg Message

	err := r.db.QueryRow(ctx, queryAppendMessage, chatID, role, content).Scan(
		&msg.ID,
		&msg.ChatID,
		&msg.Role,
		&msg.Content,
		&msg.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(ctx, queryTouchChat, chatID); err != nil {
		// ordering hint only, the message itself is already persisted
		return &msg, nil
	}

	return &msg, nil
}

func (r *Repository) Messages(ctx context.Context, chatID string) ([]Message, error) {
	rows, err := r.db.Query(ctx, queryMessages, chatID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var messages []Message

	for rows.Next() {
		var m Message

		err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt)
		if err != nil {
			return nil, err
		}

		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
