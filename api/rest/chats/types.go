package chats

import "codeberg.org/copyforge/server/copyforge/chats"

// CreateChatRequest starts a new copywriting conversation
type CreateChatRequest struct {
	Title string `json:"title"`
	Model string `json:"model"`
}

// SendMessageRequest is one copywriting turn. The brief fields steer the
// draft and are optional after the first message.
type SendMessageRequest struct {
	Content  string `json:"content" binding:"required"`
	Model    string `json:"model"`
	Tone     string `json:"tone"`
	Audience string `json:"audience"`
	Format   string `json:"format"`
	Topic    string `json:"topic"`
}

// MessageResponse carries the persisted turn. AccountingWarning is set when
// the draft was delivered but the usage bookkeeping failed afterwards.
type MessageResponse struct {
	Message           *chats.Message `json:"message"`
	Reply             *chats.Message `json:"reply"`
	AccountingWarning string         `json:"accounting_warning,omitempty"`
}

// ChatsListResponse wraps the user's chats
type ChatsListResponse struct {
	Chats []chats.Chat `json:"chats"`
}

// MessagesListResponse wraps a chat's message history
type MessagesListResponse struct {
	Messages []chats.Message `json:"messages"`
}
