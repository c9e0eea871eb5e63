package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	restauth "codeberg.org/copyforge/server/api/rest/auth"
	restbilling "codeberg.org/copyforge/server/api/rest/billing"
	restchats "codeberg.org/copyforge/server/api/rest/chats"
	"codeberg.org/copyforge/server/api/rest/exports"
	"codeberg.org/copyforge/server/api/rest/health"
	"codeberg.org/copyforge/server/api/rest/images"
	"codeberg.org/copyforge/server/api/rest/models"
	"codeberg.org/copyforge/server/api/rest/profile"
	"codeberg.org/copyforge/server/internal/ratelimit"
)

// generation endpoints share one per-IP budget
const generateRateLimit = "20-M"

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.FrontendURL))
	router.GET("/health", health.Handler)

	generateLimit := ratelimit.Middleware(generateRateLimit)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		restauth.RegisterRoutes(v1, server.userRepo)
		restchats.RegisterRoutes(v1, server.actionGate, server.chatRepo, server.services.Composer, generateLimit)
		images.RegisterRoutes(v1, server.actionGate, server.services.Images, server.services.Storage, generateLimit)
		exports.RegisterRoutes(v1, server.actionGate, server.chatRepo)
		models.RegisterRoutes(v1, server.profileRepo)
		profile.RegisterRoutes(v1, server.profileRepo, server.usageStore, server.chatRepo, server.ledger)
		restbilling.RegisterRoutes(v1, server.services.Billing, server.catalog)
	}
}

// CORSMiddleware allows the configured front end origin
func CORSMiddleware(frontendURL string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
