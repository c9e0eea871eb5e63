package composer

import "strings"

const systemPromptBase = `You are an expert copywriter. Write clear, persuasive marketing copy.
Follow the brief exactly. Return only the requested copy, no preamble and no commentary.`

type promptContext struct {
	Tone     string
	Audience string
	Format   string
	Topic    string
}

func buildSystemPrompt(pc promptContext) string {
	var b strings.Builder

	b.WriteString(systemPromptBase)

	if pc.Format != "" {
		b.WriteString("\n\nFormat: ")
		b.WriteString(pc.Format)
	}

	if pc.Tone != "" {
		b.WriteString("\nTone: ")
		b.WriteString(pc.Tone)
	}

	if pc.Audience != "" {
		b.WriteString("\nTarget audience: ")
		b.WriteString(pc.Audience)
	}

	if pc.Topic != "" {
		b.WriteString("\nSubject: ")
		b.WriteString(pc.Topic)
	}

	return b.String()
}
