package composer

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/copyforge/server/internal/llm"
)

func New(generator llm.TextGenerator) *Composer {
	return &Composer{generator: generator}
}

// Draft runs one copywriting turn: system prompt from the structured brief,
// conversation history, then the user's instruction
func (c *Composer) Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	instruction := strings.TrimSpace(req.Instruction)

	if instruction == "" {
		return nil, fmt.Errorf("instruction is required")
	}

	messages := make([]llm.Message, 0, len(req.History)+1)
	messages = append(messages, req.History...)
	messages = append(messages, llm.Message{Role: "user", Content: instruction})

	resp, err := c.generator.GenerateText(ctx, llm.TextRequest{
		Model: req.Model,
		System: buildSystemPrompt(promptContext{
			Tone:     req.Tone,
			Audience: req.Audience,
			Format:   req.Format,
			Topic:    req.Topic,
		}),
		Messages: messages,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to generate copy: %w", err)
	}

	return &DraftResponse{
		Text:  resp.Text,
		Model: resp.Model,
		Usage: resp.Usage,
	}, nil
}
