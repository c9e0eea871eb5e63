package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/copyforge/users"
	"codeberg.org/copyforge/server/internal/config"
	"codeberg.org/copyforge/server/internal/gate"
	"codeberg.org/copyforge/server/internal/logger"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// configure connection pool for supabase free tier pooler compatibility
	// free tier has ~10-15 pooler connections, so keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// CRITICAL: use simple protocol for supabase pooler (PgBouncer) compatibility
	// pgBouncer in transaction mode doesn't support prepared statements,
	// which causes connections to hang on subsequent queries
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	profileRepo := profiles.NewRepository(db)
	chatRepo := chats.NewRepository(db)
	ledger := credits.NewLedger(db)
	usageStore := usage.NewStore(db)

	catalog := plans.NewCatalog(cfg.Stripe.PriceIDBasic, cfg.Stripe.PriceIDPro)

	actionGate := gate.New(profileRepo, usageStore, ledger, chatRepo)

	services := InitializeServices(cfg, profileRepo, ledger, catalog)

	logger.Info("services initialized",
		"plans", len(catalog.All()),
		"environment", cfg.Environment,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		db:          db,
		config:      cfg,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		chatRepo:    chatRepo,
		ledger:      ledger,
		usageStore:  usageStore,
		catalog:     catalog,
		actionGate:  actionGate,
		services:    services,
		router:      router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// Close releases the server's database resources
func (s *Server) Close() {
	s.db.Close()
}
