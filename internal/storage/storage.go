package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxImageSize = 25 << 20 // 25 MB

// shared HTTP client for storage transfers
var storageHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

func NewClient(config Config) *Client {
	config.Endpoint = strings.TrimRight(config.Endpoint, "/")

	return &Client{
		config:     config,
		httpClient: storageHTTPClient,
	}
}

// UploadFromURL downloads the image at srcURL and stores it under objectKey,
// returning the public URL of the stored copy.
func (c *Client) UploadFromURL(ctx context.Context, srcURL, objectKey string) (string, error) {
	if srcURL == "" {
		return "", fmt.Errorf("source url is required")
	}

	if objectKey == "" {
		return "", fmt.Errorf("object key is required")
	}

	getReq, err := http.NewRequestWithContext(ctx, "GET", srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	getResp, err := c.httpClient.Do(getReq)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download failed with status %d", getResp.StatusCode)
	}

	contentType := getResp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	body := io.LimitReader(getResp.Body, maxImageSize)

	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.config.Endpoint, c.config.Bucket, objectKey)

	putReq, err := http.NewRequestWithContext(ctx, "POST", uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	putReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.ServiceKey))
	putReq.Header.Set("Content-Type", contentType)
	putReq.Header.Set("x-upsert", "true")

	if getResp.ContentLength > 0 && getResp.ContentLength <= maxImageSize {
		putReq.ContentLength = getResp.ContentLength
	}

	putResp, err := c.httpClient.Do(putReq)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	defer putResp.Body.Close()

	if putResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(putResp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", putResp.StatusCode, string(respBody))
	}

	return c.PublicURL(objectKey), nil
}

// PublicURL returns the public URL for an object in the bucket. The bucket
// must be configured as public.
func (c *Client) PublicURL(objectKey string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.config.Endpoint, c.config.Bucket, objectKey)
}
