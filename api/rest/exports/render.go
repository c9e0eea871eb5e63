package exports

import (
	"fmt"
	"strings"

	"codeberg.org/copyforge/server/copyforge/chats"
)

// renderTranscript serializes a chat's assistant drafts into the requested
// format. Only assistant messages are exported - the user's instructions are
// working notes, not copy.
func renderTranscript(chat *chats.Chat, messages []chats.Message, format string) string {
	drafts := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.Role == "assistant" {
			drafts = append(drafts, m.Content)
		}
	}

	switch format {
	case "", "txt":
		return strings.Join(drafts, "\n\n---\n\n")
	case "html":
		var b strings.Builder

		b.WriteString("<article>\n")
		b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", htmlEscape(chat.Title)))

		for _, d := range drafts {
			b.WriteString(fmt.Sprintf("<section>\n<p>%s</p>\n</section>\n", htmlEscape(d)))
		}

		b.WriteString("</article>\n")

		return b.String()
	default:
		// md, and the md source for pdf/docx conversion
		var b strings.Builder

		b.WriteString("# " + chat.Title + "\n")

		for _, d := range drafts {
			b.WriteString("\n" + d + "\n")
		}

		return b.String()
	}
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)

	return replacer.Replace(s)
}

// exportExtension maps a requested format to the download extension
func exportExtension(format string) string {
	switch format {
	case "", "txt":
		return "txt"
	case "markdown":
		return "md"
	default:
		return format
	}
}
