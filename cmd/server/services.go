package main

import (
	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/internal/billing"
	"codeberg.org/copyforge/server/internal/composer"
	"codeberg.org/copyforge/server/internal/config"
	"codeberg.org/copyforge/server/internal/imagegen"
	"codeberg.org/copyforge/server/internal/llm"
	"codeberg.org/copyforge/server/internal/storage"
)

// creates and configures all external service clients
func InitializeServices(cfg *config.Config, profileRepo *profiles.Repository, ledger *credits.Ledger, catalog *plans.Catalog) *Services {
	billing.InitStripe(cfg.Stripe.SecretKey)

	llmClient := llm.NewAnthropicClient(llm.AnthropicConfig{
		APIKey: cfg.AnthropicKey,
	})

	imageClient := imagegen.NewClient(imagegen.Config{
		APIKey: cfg.OpenAIKey,
	})

	storageClient := storage.NewClient(storage.Config{
		Endpoint:   cfg.Storage.Endpoint,
		ServiceKey: cfg.Storage.ServiceKey,
		Bucket:     cfg.Storage.Bucket,
	})

	billingService := billing.NewService(
		profileRepo,
		ledger,
		catalog,
		cfg.Stripe.WebhookSecret,
		cfg.FrontendURL,
	)

	return &Services{
		LLM:      llmClient,
		Composer: composer.New(llmClient),
		Images:   imageClient,
		Storage:  storageClient,
		Billing:  billingService,
	}
}
