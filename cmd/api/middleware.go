package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giovaniif/device-rental/domain/account"
	"github.com/giovaniif/device-rental/infra/requestid"
)

const identityKey = "identity"

type tokenParser interface {
	Parse(authHeader string) (account.Identity, error)
}

func authenticate(tokens tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := tokens.Parse(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func requireStaff(c *gin.Context) {
	if !currentIdentity(c).IsStaff() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff only"})
		return
	}
	c.Next()
}

func currentIdentity(c *gin.Context) account.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(account.Identity); ok {
			return identity
		}
	}
	return account.Identity{}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestid.FromContext(c.Request.Context()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "err", c.Errors.String())
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.ErrorContext(c.Request.Context(), "request", attrs...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.WarnContext(c.Request.Context(), "request", attrs...)
		default:
			logger.InfoContext(c.Request.Context(), "request", attrs...)
		}
	}
}
