package storage

import "net/http"

// re-uploads provider-hosted images into a Supabase Storage bucket so they
// outlive the provider's temporary URLs
type Client struct {
	config     Config
	httpClient *http.Client
}

type Config struct {
	Endpoint   string // e.g. "https://xyz.supabase.co"
	ServiceKey string
	Bucket     string
}
