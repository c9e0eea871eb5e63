package exports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/copyforge/server/copyforge/chats"
	"codeberg.org/copyforge/server/internal/auth"
	apierrors "codeberg.org/copyforge/server/internal/errors"
	"codeberg.org/copyforge/server/internal/gate"
	"codeberg.org/copyforge/server/internal/logger"
)

// ExportHandler renders a chat's drafts into a downloadable document
func ExportHandler(actionGate *gate.Gate, chatRepo *chats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "not authenticated")
			return
		}

		var req ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if !validFormat(req.Format) {
			apierrors.BadRequest(c, "unsupported export format", nil)
			return
		}

		chat, err := chatRepo.Get(c.Request.Context(), req.ChatID, userID)
		if err != nil {
			apierrors.NotFound(c, "chat")
			return
		}

		grant, err := actionGate.Authorize(c.Request.Context(), userID, gate.Request{
			Action: gate.ActionTextExport,
			Format: req.Format,
		})
		if err != nil {
			gate.RespondDenied(c, err)
			return
		}

		messages, err := chatRepo.Messages(c.Request.Context(), req.ChatID)
		if err != nil {
			apierrors.InternalError(c, "failed to load messages", err)
			return
		}

		content := renderTranscript(chat, messages, req.Format)

		warning := ""
		if err := grant.Commit(c.Request.Context()); err != nil {
			logger.Warn("usage accounting failed after delivery",
				"user_id", userID,
				"error", err,
			)

			warning = "usage accounting failed, your balance may not reflect this request"
		}

		c.JSON(http.StatusOK, ExportResponse{
			Filename:          fmt.Sprintf("%s.%s", chat.ID, exportExtension(req.Format)),
			Format:            exportExtension(req.Format),
			Content:           content,
			AccountingWarning: warning,
		})
	}
}

func validFormat(format string) bool {
	switch format {
	case "", "txt", "md", "markdown", "html", "pdf", "docx":
		return true
	default:
		return false
	}
}
