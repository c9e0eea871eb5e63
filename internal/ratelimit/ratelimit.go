package ratelimit

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"codeberg.org/copyforge/server/internal/logger"
)

// Middleware returns a per-client-IP rate limiting middleware. The format is
// limiter's "<count>-<period>" notation, e.g. "20-M" for 20 requests/minute.
// The store is in-memory, so limits are per-instance.
func Middleware(format string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		logger.Fatal("invalid rate limit format", "format", format, "error", err)
	}

	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
