package exports

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/gate"
)

func RegisterRoutes(router *gin.RouterGroup, actionGate *gate.Gate, chatRepo *chats.Repository) {
	router.POST("/exports", auth.AuthMiddleware(), ExportHandler(actionGate, chatRepo))
}
