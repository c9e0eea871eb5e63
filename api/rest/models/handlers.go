package models

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/internal/auth"
	"codeberg.org/copyforge/server/internal/entitlements"
	apierrors "codeberg.org/copyforge/server/internal/errors"
)

// Response lists the models the user's plan may select
type Response struct {
	Models       []string `json:"models"`
	DefaultModel string   `json:"default_model"`
	Tier         string   `json:"tier"`
}

// ListHandler returns the model list for the authenticated user's tier
func ListHandler(profileRepo *profiles.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		profile, err := profileRepo.GetOrCreate(c.Request.Context(), userID)
		if err != nil {
			apierrors.InternalError(c, "failed to load profile", err)
			return
		}

		tier := entitlements.Normalize(profile.Tier)

		c.JSON(http.StatusOK, Response{
			Models:       entitlements.AvailableModels(tier),
			DefaultModel: entitlements.DefaultModel(tier),
			Tier:         string(tier),
		})
	}
}
