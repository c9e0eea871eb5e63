package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_QualityFollowsHDFlag(t *testing.T) {
	var got generationRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created": 1, "data": [{"url": "https://tmp.example/img.png"}]}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	url, err := client.Generate(context.Background(), Request{Prompt: "a red bicycle", HD: true})
	require.NoError(t, err)
	assert.Equal(t, "https://tmp.example/img.png", url)
	assert.Equal(t, qualityHD, got.Quality)
	assert.Equal(t, defaultImageModel, got.Model)
	assert.Equal(t, 1, got.N)

	_, err = client.Generate(context.Background(), Request{Prompt: "a red bicycle"})
	require.NoError(t, err)
	assert.Equal(t, qualityStandard, got.Quality)
}

func TestGenerate_EmptyPromptRejected(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})

	_, err := client.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestGenerate_APIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "billing hard limit"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.Generate(context.Background(), Request{Prompt: "a red bicycle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_EmptyDataRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"created": 1, "data": []}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.Generate(context.Background(), Request{Prompt: "a red bicycle"})
	assert.Error(t, err)
}
