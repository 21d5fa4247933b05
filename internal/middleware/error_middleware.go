package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/logger"
)

// HandleAPIError translates a service error into the HTTP error body. Errors
// carrying a "CODE<status>: message" convention keep their status and bare
// message; anything else surfaces as a 500 with the raw error text.
func HandleAPIError(c *gin.Context, err error) {
	status, message := apperrors.Parse(err)

	if status >= 500 {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}

	c.JSON(status, gin.H{"error": message})
}
