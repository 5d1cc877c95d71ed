package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.prompts/internal/metrics"
	"io.winapps.prompts/internal/middleware"
	"io.winapps.prompts/internal/store"
)

func requestContextFields(c *gin.Context) []interface{} {
	return []interface{}{
		"request_id", c.GetString(middleware.RequestIDKey),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"user_uid", c.GetString(middleware.UIDKey),
	}
}

func logWithContext(logger *zap.SugaredLogger, c *gin.Context, level string, msg string, fields ...interface{}) {
	all := append(requestContextFields(c), fields...)
	switch level {
	case "debug":
		logger.Debugw(msg, all...)
	case "warn":
		logger.Warnw(msg, all...)
	case "error":
		logger.Errorw(msg, all...)
	default:
		logger.Infow(msg, all...)
	}
}

func (h *PromptHandler) logError(c *gin.Context, err error, msg string, fields ...interface{}) {
	logWithContext(h.logger, c, "error", msg, append(fields, "error", err)...)
}

// observe counts a store call by outcome.
func observe(storeName, op string, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(storeName, op, status).Inc()
}
