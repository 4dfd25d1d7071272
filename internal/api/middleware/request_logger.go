package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestLogger emits one structured line per request. Incoming
// X-Request-Id values are honored so log lines can be correlated with
// the frontend; absent one, a fresh id is minted and echoed back.
func RequestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Set("request_id", id)

		c.Next()

		route := c.FullPath()
		if route == "" {
			// unmatched routes (404s) have no route template
			route = c.Request.URL.Path
		}

		fields := logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"route":      route,
			"status":     c.Writer.Status(),
			"elapsed_ms": time.Since(started).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if uid, ok := c.Get("user_id"); ok {
			fields["user_id"] = uid
		}
		entry := l.WithFields(fields)
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
