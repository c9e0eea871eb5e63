package exports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/copyforge/server/copyforge/chats"
)

func transcriptFixture() (*chats.Chat, []chats.Message) {
	chat := &chats.Chat{ID: "c1", Title: "Launch email"}

	messages := []chats.Message{
		{Role: "user", Content: "write a launch email"},
		{Role: "assistant", Content: "Introducing CopyForge."},
		{Role: "user", Content: "add urgency"},
		{Role: "assistant", Content: "Introducing CopyForge. Today only."},
	}

	return chat, messages
}

func TestRenderTranscript_TxtDropsUserMessages(t *testing.T) {
	chat, messages := transcriptFixture()

	out := renderTranscript(chat, messages, "txt")

	assert.Contains(t, out, "Introducing CopyForge.")
	assert.Contains(t, out, "Today only.")
	assert.NotContains(t, out, "write a launch email")
}

func TestRenderTranscript_MarkdownCarriesTitle(t *testing.T) {
	chat, messages := transcriptFixture()

	out := renderTranscript(chat, messages, "md")

	assert.Contains(t, out, "# Launch email")
	assert.Contains(t, out, "Introducing CopyForge.")
}

func TestRenderTranscript_HTMLEscapes(t *testing.T) {
	chat := &chats.Chat{ID: "c1", Title: "A <b>bold</b> title"}
	messages := []chats.Message{{Role: "assistant", Content: "1 < 2 & 3 > 2"}}

	out := renderTranscript(chat, messages, "html")

	assert.Contains(t, out, "A &lt;b&gt;bold&lt;/b&gt; title")
	assert.Contains(t, out, "1 &lt; 2 &amp; 3 &gt; 2")
	assert.NotContains(t, out, "<b>bold</b>")
}

func TestExportExtension(t *testing.T) {
	assert.Equal(t, "txt", exportExtension(""))
	assert.Equal(t, "md", exportExtension("markdown"))
	assert.Equal(t, "pdf", exportExtension("pdf"))
}
