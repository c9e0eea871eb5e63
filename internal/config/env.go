package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	jwtSecret := os.Getenv("JWT_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if anthropicKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY environment variable is required")
	}

	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if webhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET environment variable is required")
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	return &Config{
		DatabaseURL:  databaseURL,
		AnthropicKey: anthropicKey,
		OpenAIKey:    openaiKey,
		JWTSecret:    jwtSecret,
		Environment:  environment,
		FrontendURL:  frontendURL,
		Stripe: StripeConfig{
			SecretKey:     stripeKey,
			WebhookSecret: webhookSecret,
			PriceIDBasic:  os.Getenv("STRIPE_PRICE_ID_BASIC"),
			PriceIDPro:    os.Getenv("STRIPE_PRICE_ID_PRO"),
		},
		Storage: StorageConfig{
			Endpoint:   os.Getenv("SUPABASE_STORAGE_URL"),
			ServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
			Bucket:     envOrDefault("SUPABASE_STORAGE_BUCKET", "generated-images"),
		},
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
