package images

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/internal/auth"
	apierrors "codeberg.org/copyforge/server/internal/errors"
	"codeberg.org/copyforge/server/internal/gate"
	"codeberg.org/copyforge/server/internal/imagegen"
	"codeberg.org/copyforge/server/internal/logger"
	"codeberg.org/copyforge/server/internal/storage"
)

// GenerateHandler generates a marketing image and re-uploads it to durable
// storage before responding
func GenerateHandler(actionGate *gate.Gate, imageClient *imagegen.Client, storageClient *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		grant, err := actionGate.Authorize(c.Request.Context(), userID, gate.Request{
			Action: gate.ActionImageGeneration,
			HD:     req.HD,
		})
		if err != nil {
			gate.RespondDenied(c, err)
			return
		}

		tempURL, err := imageClient.Generate(c.Request.Context(), imagegen.Request{
			Prompt: req.Prompt,
			Size:   req.Size,
			HD:     req.HD,
		})
		if err != nil {
			// nothing committed: a failed generation never costs the user
			apierrors.UpstreamFailure(c, "image generation failed", err)
			return
		}

		objectKey := fmt.Sprintf("%s/%d.png", userID, time.Now().UnixNano())

		url, err := storageClient.UploadFromURL(c.Request.Context(), tempURL, objectKey)
		if err != nil {
			apierrors.UpstreamFailure(c, "image storage failed", err)
			return
		}

		warning := ""
		if err := grant.Commit(c.Request.Context()); err != nil {
			logger.Warn("usage accounting failed after delivery",
				"user_id", userID,
				"error", err,
			)

			warning = "usage accounting failed, your balance may not reflect this request"
		}

		c.JSON(http.StatusOK, GenerateResponse{
			URL:               url,
			AccountingWarning: warning,
		})
	}
}
