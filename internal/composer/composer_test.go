package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/copyforge/server/internal/llm"
)

// implements llm.TextGenerator for testing
type mockGenerator struct {
	lastReq llm.TextRequest
	err     error
}

func (m *mockGenerator) GenerateText(_ context.Context, req llm.TextRequest) (*llm.TextResponse, error) {
	m.lastReq = req

	if m.err != nil {
		return nil, m.err
	}

	return &llm.TextResponse{Text: "Buy the thing.", Model: req.Model}, nil
}

func TestDraft_BriefFlowsIntoSystemPrompt(t *testing.T) {
	gen := &mockGenerator{}
	comp := New(gen)

	resp, err := comp.Draft(context.Background(), DraftRequest{
		Model:       "claude-3-haiku-20240307",
		Instruction: "write a headline",
		Tone:        "playful",
		Audience:    "small business owners",
		Format:      "landing page headline",
		Topic:       "invoicing software",
	})
	require.NoError(t, err)
	assert.Equal(t, "Buy the thing.", resp.Text)

	system := gen.lastReq.System
	assert.Contains(t, system, "Tone: playful")
	assert.Contains(t, system, "Target audience: small business owners")
	assert.Contains(t, system, "Format: landing page headline")
	assert.Contains(t, system, "Subject: invoicing software")
}

func TestDraft_EmptyBriefKeepsBasePromptOnly(t *testing.T) {
	gen := &mockGenerator{}
	comp := New(gen)

	_, err := comp.Draft(context.Background(), DraftRequest{
		Model:       "claude-3-haiku-20240307",
		Instruction: "shorter please",
	})
	require.NoError(t, err)

	assert.Equal(t, systemPromptBase, gen.lastReq.System)
}

func TestDraft_HistoryPrecedesInstruction(t *testing.T) {
	gen := &mockGenerator{}
	comp := New(gen)

	history := []llm.Message{
		{Role: "user", Content: "write a headline"},
		{Role: "assistant", Content: "Invoices, handled."},
	}

	_, err := comp.Draft(context.Background(), DraftRequest{
		Model:       "claude-3-haiku-20240307",
		Instruction: "make it punchier",
		History:     history,
	})
	require.NoError(t, err)

	require.Len(t, gen.lastReq.Messages, 3)
	assert.Equal(t, "write a headline", gen.lastReq.Messages[0].Content)
	assert.Equal(t, "make it punchier", gen.lastReq.Messages[2].Content)
	assert.Equal(t, "user", gen.lastReq.Messages[2].Role)
}

func TestDraft_BlankInstructionRejected(t *testing.T) {
	comp := New(&mockGenerator{})

	_, err := comp.Draft(context.Background(), DraftRequest{Instruction: "   "})
	assert.Error(t, err)
}

func TestDraft_GeneratorErrorWrapped(t *testing.T) {
	gen := &mockGenerator{err: errors.New("rate limited")}
	comp := New(gen)

	_, err := comp.Draft(context.Background(), DraftRequest{
		Model:       "claude-3-haiku-20240307",
		Instruction: "write a headline",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "rate limited"))
}
