package billing

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/billing"
)

func RegisterRoutes(router *gin.RouterGroup, svc *billing.Service, catalog *plans.Catalog) {
	billingGroup := router.Group("/billing")
	{
		billingGroup.GET("/plans", ListPlansHandler(catalog))

		// webhook is authenticated by signature, not by JWT
		billingGroup.POST("/webhook", WebhookHandler(svc))

		billingGroup.POST("/checkout", auth.AuthMiddleware(), CheckoutHandler(svc, catalog))
		billingGroup.POST("/portal", auth.AuthMiddleware(), PortalHandler(svc))
	}
}
