package profile

import (
	"time"

	"codeberg.org/copyforge/server/copyforge/credits"
)

// Response is the account dashboard payload: plan, balance, and how much of
// each free-tier cap is used
type Response struct {
	Tier              string     `json:"tier"`
	CreditsRemaining  int        `json:"credits_remaining"`
	CreditsTotal      int        `json:"credits_total"`
	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`
	Usage             UsageMeter `json:"usage"`
	Limits            Limits     `json:"limits"`
}

// UsageMeter holds the current counter values
type UsageMeter struct {
	Chats            int `json:"chats"`
	ImageGenerations int `json:"image_generations"`
	TextExports      int `json:"text_exports"`
	Regenerations    int `json:"regenerations"`
}

// Limits holds the tier's caps, -1 meaning unlimited
type Limits struct {
	MaxChats            int `json:"max_chats"`
	MaxMessagesPerChat  int `json:"max_messages_per_chat"`
	MaxImageGenerations int `json:"max_image_generations"`
	MaxTextExports      int `json:"max_text_exports"`
	MaxRegenerations    int `json:"max_regenerations"`
}

// TransactionsResponse wraps the user's credit history
type TransactionsResponse struct {
	Transactions []credits.Transaction `json:"transactions"`
}
