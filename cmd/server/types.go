package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/copyforge/users"
	"codeberg.org/copyforge/server/internal/billing"
	"codeberg.org/copyforge/server/internal/composer"
	"codeberg.org/copyforge/server/internal/config"
	"codeberg.org/copyforge/server/internal/gate"
	"codeberg.org/copyforge/server/internal/imagegen"
	"codeberg.org/copyforge/server/internal/llm"
	"codeberg.org/copyforge/server/internal/storage"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	userRepo    *users.Repository
	profileRepo *profiles.Repository
	chatRepo    *chats.Repository
	ledger      *credits.Ledger
	usageStore  *usage.Store
	catalog     *plans.Catalog
	actionGate  *gate.Gate
	services    *Services
	router      *gin.Engine
}

// holds all external service clients
type Services struct {
	LLM      llm.TextGenerator
	Composer *composer.Composer
	Images   *imagegen.Client
	Storage  *storage.Client
	Billing  *billing.Service
}
