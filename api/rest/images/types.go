package images

// GenerateRequest asks for one marketing image
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Size   string `json:"size"`
	HD     bool   `json:"hd"`
}

// GenerateResponse carries the durable URL of the stored image
type GenerateResponse struct {
	URL               string `json:"url"`
	AccountingWarning string `json:"accounting_warning,omitempty"`
}
