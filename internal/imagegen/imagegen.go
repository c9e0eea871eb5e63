package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openaiImagesURL   = "https://api.openai.com/v1/images/generations"
	defaultImageModel = "dall-e-3"
	defaultImageSize  = "1024x1024"
	qualityStandard   = "standard"
	qualityHD         = "hd"
	maxPromptLength   = 4000
)

// shared HTTP client for OpenAI API calls
var openaiHTTPClient = &http.Client{
	Timeout: 120 * time.Second, // image generation is slow
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

type generationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

type generationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = defaultImageModel
	}

	if config.BaseURL == "" {
		config.BaseURL = openaiImagesURL
	}

	return &Client{
		config:     config,
		httpClient: openaiHTTPClient,
	}
}

// Generate returns a temporary URL for the generated image. The URL expires
// on the provider side - callers re-upload to durable storage.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if req.Prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	if len(req.Prompt) > maxPromptLength {
		return "", fmt.Errorf("prompt exceeds %d characters", maxPromptLength)
	}

	size := req.Size
	if size == "" {
		size = defaultImageSize
	}

	quality := qualityStandard
	if req.HD {
		quality = qualityHD
	}

	body := generationRequest{
		Model:   c.config.Model,
		Prompt:  req.Prompt,
		N:       1,
		Size:    size,
		Quality: quality,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp generationResponse

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Data) == 0 || apiResp.Data[0].URL == "" {
		return "", fmt.Errorf("no image returned")
	}

	return apiResp.Data[0].URL, nil
}
