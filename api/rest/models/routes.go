package models

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, profileRepo *profiles.Repository) {
	router.GET("/models", auth.AuthMiddleware(), ListHandler(profileRepo))
}
