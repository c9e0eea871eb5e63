package exports

// ExportRequest renders a chat transcript for download. Formats beyond txt
// and md are gated behind the pro plan.
type ExportRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
	Format string `json:"format"`
}

// ExportResponse carries the rendered document. For pdf and docx the content
// is the markdown source the client-side converter consumes.
type ExportResponse struct {
	Filename          string `json:"filename"`
	Format            string `json:"format"`
	Content           string `json:"content"`
	AccountingWarning string `json:"accounting_warning,omitempty"`
}
