package config

type Config struct {
	DatabaseURL  string
	AnthropicKey string
	OpenAIKey    string
	JWTSecret    string
	Environment  string

	Stripe  StripeConfig
	Storage StorageConfig

	// base URL the front end lives at, used for checkout redirects
	FrontendURL string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceIDBasic  string
	PriceIDPro    string
}

type StorageConfig struct {
	// supabase project URL, e.g. https://<project>.supabase.co
	Endpoint   string
	ServiceKey string
	Bucket     string
}
