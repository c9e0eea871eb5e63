package images

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/gate"
	"codeberg.org/copyforge/server/internal/imagegen"
	"codeberg.org/copyforge/server/internal/storage"
)

func RegisterRoutes(router *gin.RouterGroup, actionGate *gate.Gate, imageClient *imagegen.Client, storageClient *storage.Client, generateLimit gin.HandlerFunc) {
	router.POST("/images", auth.AuthMiddleware(), generateLimit, GenerateHandler(actionGate, imageClient, storageClient))
}
