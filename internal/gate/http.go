package gate

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "codeberg.org/copyforge/server/internal/errors"
)

// RespondDenied maps an Authorize denial onto its HTTP response. Denials are
// expected business outcomes, not server errors.
func RespondDenied(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUpgradeRequired):
		apierrors.UpgradeRequired(c, "this action requires a higher plan")
	case errors.Is(err, ErrLimitReached):
		apierrors.LimitReached(c, "plan limit reached, upgrade to continue")
	case errors.Is(err, ErrInsufficientCredits):
		apierrors.InsufficientCredits(c, "not enough credits for this action")
	default:
		apierrors.InternalError(c, "failed to authorize action", err)
	}
}
