package chats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/composer"
	"codeberg.org/copyforge/server/internal/entitlements"
	apierrors "codeberg.org/copyforge/server/internal/errors"
	"codeberg.org/copyforge/server/internal/gate"
	"codeberg.org/copyforge/server/internal/llm"
	"codeberg.org/copyforge/server/internal/logger"
)

// CreateChatHandler starts a new chat for the authenticated user
func CreateChatHandler(actionGate *gate.Gate, chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		var req CreateChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		grant, err := actionGate.Authorize(c.Request.Context(), userID, gate.Request{Action: gate.ActionNewChat})
		if err != nil {
			gate.RespondDenied(c, err)
			return
		}

		model := req.Model
		if model == "" {
			model = entitlements.DefaultModel(grant.Tier)
		} else if !entitlements.ModelAllowed(grant.Tier, model) {
			apierrors.UpgradeRequired(c, "model not available on your plan")
			return
		}

		title := req.Title
		if title == "" {
			title = "Untitled draft"
		}

		chat, err := chatRepo.Create(c.Request.Context(), userID, title, model)
		if err != nil {
			apierrors.InternalError(c, "failed to create chat", err)
			return
		}

		c.JSON(http.StatusCreated, chat)
	}
}

// ListChatsHandler lists all chats for the authenticated user
func ListChatsHandler(chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		chatsList, err := chatRepo.List(c.Request.Context(), userID)
		if err != nil {
			apierrors.InternalError(c, "failed to list chats", err)
			return
		}

		c.JSON(http.StatusOK, ChatsListResponse{Chats: chatsList})
	}
}

// GetChatHandler gets a single chat by ID
func GetChatHandler(chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		chat, err := chatRepo.Get(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			apierrors.NotFound(c, "chat")
			return
		}

		c.JSON(http.StatusOK, chat)
	}
}

// ListMessagesHandler returns a chat's message history
func ListMessagesHandler(chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		chatID := c.Param("id")

		if _, err := chatRepo.Get(c.Request.Context(), chatID, userID); err != nil {
			apierrors.NotFound(c, "chat")
			return
		}

		messages, err := chatRepo.Messages(c.Request.Context(), chatID)
		if err != nil {
			apierrors.InternalError(c, "failed to load messages", err)
			return
		}

		c.JSON(http.StatusOK, MessagesListResponse{Messages: messages})
	}
}

// DeleteChatHandler deletes a chat and its messages
func DeleteChatHandler(chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		if err := chatRepo.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
			apierrors.NotFound(c, "chat")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "chat deleted"})
	}
}

// SendMessageHandler generates a draft for one copywriting turn and persists
// both sides of the exchange
func SendMessageHandler(actionGate *gate.Gate, chatRepo *chats.Repository, comp *composer.Composer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		chatID := c.Param("id")

		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		chat, err := chatRepo.Get(c.Request.Context(), chatID, userID)
		if err != nil {
			apierrors.NotFound(c, "chat")
			return
		}

		model := req.Model
		if model == "" {
			model = chat.Model
		}

		grant, err := actionGate.Authorize(c.Request.Context(), userID, gate.Request{
			Action: gate.ActionChatMessage,
			ChatID: chatID,
			Model:  model,
		})
		if err != nil {
			gate.RespondDenied(c, err)
			return
		}

		history, err := conversationHistory(c, chatRepo, chatID)
		if err != nil {
			apierrors.InternalError(c, "failed to load messages", err)
			return
		}

		draft, err := comp.Draft(c.Request.Context(), composer.DraftRequest{
			Model:       grant.Model,
			Instruction: req.Content,
			Tone:        req.Tone,
			Audience:    req.Audience,
			Format:      req.Format,
			Topic:       req.Topic,
			History:     history,
		})
		if err != nil {
			// nothing committed: a failed generation never costs the user
			apierrors.UpstreamFailure(c, "text generation failed", err)
			return
		}

		userMsg, err := chatRepo.AppendMessage(c.Request.Context(), chatID, "user", req.Content)
		if err != nil {
			apierrors.InternalError(c, "failed to save message", err)
			return
		}

		reply, err := chatRepo.AppendMessage(c.Request.Context(), chatID, "assistant", draft.Text)
		if err != nil {
			apierrors.InternalError(c, "failed to save message", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{
			Message:           userMsg,
			Reply:             reply,
			AccountingWarning: commitGrant(c, grant, userID),
		})
	}
}

// RegenerateMessageHandler re-runs the draft behind an assistant message
func RegenerateMessageHandler(actionGate *gate.Gate, chatRepo *chats.Repository, comp *composer.Composer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		chatID := c.Param("id")
		messageID := c.Param("mid")

		chat, err := chatRepo.Get(c.Request.Context(), chatID, userID)
		if err != nil {
			apierrors.NotFound(c, "chat")
			return
		}

		messages, err := chatRepo.Messages(c.Request.Context(), chatID)
		if err != nil {
			apierrors.InternalError(c, "failed to load messages", err)
			return
		}

		instruction, history, found := historyBefore(messages, messageID)
		if !found {
			apierrors.NotFound(c, "message")
			return
		}

		grant, err := actionGate.Authorize(c.Request.Context(), userID, gate.Request{
			Action: gate.ActionRegeneration,
			ChatID: chatID,
			Model:  chat.Model,
		})
		if err != nil {
			gate.RespondDenied(c, err)
			return
		}

		draft, err := comp.Draft(c.Request.Context(), composer.DraftRequest{
			Model:       grant.Model,
			Instruction: instruction,
			History:     history,
		})
		if err != nil {
			apierrors.UpstreamFailure(c, "text generation failed", err)
			return
		}

		reply, err := chatRepo.AppendMessage(c.Request.Context(), chatID, "assistant", draft.Text)
		if err != nil {
			apierrors.InternalError(c, "failed to save message", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{
			Reply:             reply,
			AccountingWarning: commitGrant(c, grant, userID),
		})
	}
}

// loads the chat history as LLM messages
func conversationHistory(c *gin.Context, chatRepo *chats.Repository, chatID string) ([]llm.Message, error) {
	messages, err := chatRepo.Messages(c.Request.Context(), chatID)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	return history, nil
}

// historyBefore returns the user instruction that produced the target
// assistant message, plus the conversation up to that instruction
func historyBefore(messages []chats.Message, messageID string) (string, []llm.Message, bool) {
	target := -1
	for i, m := range messages {
		if m.ID == messageID && m.Role == "assistant" {
			target = i
			break
		}
	}

	if target == -1 {
		return "", nil, false
	}

	instruction := ""
	cutoff := target

	for i := target - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			instruction = messages[i].Content
			cutoff = i
			break
		}
	}

	history := make([]llm.Message, 0, cutoff)
	for _, m := range messages[:cutoff] {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	return instruction, history, true
}

// commitGrant settles usage bookkeeping after a delivered result. Failure is
// surfaced as a warning, never by withdrawing the result.
func commitGrant(c *gin.Context, grant *gate.Grant, userID string) string {
	err := grant.Commit(c.Request.Context())
	if err == nil {
		return ""
	}

	logger.Warn("usage accounting failed after delivery",
		"user_id", userID,
		"error", err,
	)

	return "usage accounting failed, your balance may not reflect this request"
}
