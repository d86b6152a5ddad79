package utils

import (
	"io"

	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseLogged closes c and reports a failure at debug level.
func CloseLogged(c io.Closer, log logger.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Debug("failed to close", logger.String("what", what), logger.Error(err))
	}
}
