package chats

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/composer"
	"codeberg.org/copyforge/server/internal/gate"
)

func RegisterRoutes(router *gin.RouterGroup, actionGate *gate.Gate, chatRepo *chats.Repository, comp *composer.Composer, generateLimit gin.HandlerFunc) {
	chatsGroup := router.Group("/chats")
	chatsGroup.Use(auth.AuthMiddleware())
	{
		chatsGroup.GET("", ListChatsHandler(chatRepo))
		chatsGroup.POST("", CreateChatHandler(actionGate, chatRepo))
		chatsGroup.GET("/:id", GetChatHandler(chatRepo))
		chatsGroup.DELETE("/:id", DeleteChatHandler(chatRepo))
		chatsGroup.GET("/:id/messages", ListMessagesHandler(chatRepo))

		// generation endpoints carry the per-IP rate limit
		chatsGroup.POST("/:id/messages", generateLimit, SendMessageHandler(actionGate, chatRepo, comp))
		chatsGroup.POST("/:id/messages/:mid/regenerate", generateLimit, RegenerateMessageHandler(actionGate, chatRepo, comp))
	}
}
