package profile

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, profileRepo *profiles.Repository, usageStore *usage.Store, chatRepo *chats.Repository, ledger *credits.Ledger) {
	profileGroup := router.Group("/profile")
	profileGroup.Use(auth.AuthMiddleware())
	{
		profileGroup.GET("", GetProfileHandler(profileRepo, usageStore, chatRepo))
		profileGroup.GET("/transactions", ListTransactionsHandler(ledger))
	}
}
