package profile

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/entitlements"
	apierrors "codeberg.org/copyforge/server/internal/errors"
)

// GetProfileHandler returns the user's plan, balance, and usage meters
func GetProfileHandler(profileRepo *profiles.Repository, usageStore *usage.Store, chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		ctx := c.Request.Context()

		p, err := profileRepo.GetOrCreate(ctx, userID)
		if err != nil {
			apierrors.InternalError(c, "failed to load profile", err)
			return
		}

		tier := entitlements.Normalize(p.Tier)

		chatCount, err := chatRepo.CountActive(ctx, userID)
		if err != nil {
			apierrors.InternalError(c, "failed to count usage", err)
			return
		}

		imageCount, err := usageStore.Count(ctx, userID, usage.FeatureImageGeneration)
		if err != nil {
			apierrors.InternalError(c, "failed to count usage", err)
			return
		}

		exportCount, err := usageStore.Count(ctx, userID, usage.FeatureTextExport)
		if err != nil {
			apierrors.InternalError(c, "failed to count usage", err)
			return
		}

		regenCount, err := usageStore.Count(ctx, userID, usage.FeatureRegeneration)
		if err != nil {
			apierrors.InternalError(c, "failed to count usage", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Tier:              string(tier),
			CreditsRemaining:  p.CreditsRemaining,
			CreditsTotal:      p.CreditsTotal,
			SubscriptionStart: p.SubscriptionStart,
			SubscriptionEnd:   p.SubscriptionEnd,
			Usage: UsageMeter{
				Chats:            chatCount,
				ImageGenerations: imageCount,
				TextExports:      exportCount,
				Regenerations:    regenCount,
			},
			Limits: Limits{
				MaxChats:            entitlements.MaxChats(tier),
				MaxMessagesPerChat:  entitlements.MaxMessagesPerChat(tier),
				MaxImageGenerations: entitlements.MaxImageGenerations(tier),
				MaxTextExports:      entitlements.MaxTextExports(tier),
				MaxRegenerations:    entitlements.MaxRegenerations(tier),
			},
		})
	}
}

// ListTransactionsHandler returns the user's credit ledger history
func ListTransactionsHandler(ledger *credits.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		limit := 50
		if l, ok := c.GetQuery("limit"); ok {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		transactions, err := ledger.History(c.Request.Context(), userID, limit)
		if err != nil {
			apierrors.InternalError(c, "failed to load transactions", err)
			return
		}

		c.JSON(http.StatusOK, TransactionsResponse{Transactions: transactions})
	}
}
