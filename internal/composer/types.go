package composer

import "codeberg.org/copyforge/server/internal/llm"

// Composer turns structured copywriting briefs into LLM calls
type Composer struct {
	generator llm.TextGenerator
}

// DraftRequest is one turn of a copywriting conversation. Brief fields are
// optional after the first turn - the conversation history carries context.
type DraftRequest struct {
	Model       string
	Instruction string // what the user asked for this turn

	// structured brief
	Tone     string // e.g. "playful", "professional"
	Audience string // e.g. "small business owners"
	Format   string // e.g. "landing page headline", "product description"
	Topic    string

	History []llm.Message
}

type DraftResponse struct {
	Text  string
	Model string
	Usage llm.Usage
}
