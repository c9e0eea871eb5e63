package imagegen

import "net/http"

// generates marketing images via the OpenAI Images API
type Client struct {
	config     Config
	httpClient *http.Client
}

type Config struct {
	APIKey  string
	BaseURL string // defaults to the public API, overridable for tests
	Model   string // e.g. "dall-e-3"
}

type Request struct {
	Prompt string
	Size   string // e.g. "1024x1024"
	HD     bool
}
