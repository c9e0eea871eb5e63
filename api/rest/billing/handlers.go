package billing

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/billing"
	apierrors "codeberg.org/copyforge/server/internal/errors"
	"codeberg.org/copyforge/server/internal/logger"
)

// webhook payloads are small; anything larger is not from Stripe
const maxWebhookBody = int64(65536)

// ListPlansHandler returns the purchasable plan catalog
func ListPlansHandler(catalog *plans.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, PlansResponse{Plans: catalog.All()})
	}
}

// CheckoutHandler starts a Stripe checkout for the requested plan
func CheckoutHandler(svc *billing.Service, catalog *plans.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		email, _ := auth.GetUserEmail(c)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		plan, ok := catalog.ByTier(req.Tier)
		if !ok || plan.PriceID == "" {
			apierrors.BadRequest(c, "unknown plan", nil)
			return
		}

		url, err := svc.CreateCheckoutSession(c.Request.Context(), userID, email, plan.PriceID)
		if err != nil {
			apierrors.InternalError(c, "failed to create checkout session", err)
			return
		}

		c.JSON(http.StatusOK, SessionResponse{URL: url})
	}
}

// PortalHandler opens the Stripe customer portal
func PortalHandler(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		url, err := svc.CreatePortalSession(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, billing.ErrNoCustomer) {
				apierrors.BadRequest(c, "no billing account for user", nil)
				return
			}

			apierrors.InternalError(c, "failed to create portal session", err)
			return
		}

		c.JSON(http.StatusOK, SessionResponse{URL: url})
	}
}

// WebhookHandler receives Stripe lifecycle events. Any failure returns an
// error status so Stripe redelivers; handling is replay-safe.
func WebhookHandler(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			apierrors.BadRequest(c, "invalid payload", nil)
			return
		}

		event, err := svc.VerifyWebhook(body, c.GetHeader("Stripe-Signature"))
		if err != nil {
			logger.Warn("stripe webhook signature rejected", "error", err)
			apierrors.BadRequest(c, "signature verification failed", nil)
			return
		}

		if err := svc.HandleEvent(c.Request.Context(), event); err != nil {
			logger.ErrorErr(err, "stripe webhook handling failed",
				"event_id", event.ID,
				"event_type", event.Type,
			)

			apierrors.BadRequest(c, "event handling failed", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
