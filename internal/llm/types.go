package llm

import "context"

// generates copy text from a system prompt and conversation
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TextRequest struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

type TextResponse struct {
	Text  string
	Model string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}
