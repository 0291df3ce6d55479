package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OperatorAuth guards the API with HTTP basic auth against a bcrypt hash.
// An empty hash disables the check and says so once in the log.
func OperatorAuth(username, passwordHash string, logger *zap.Logger) gin.HandlerFunc {
	if passwordHash == "" {
		logger.Warn("operator auth disabled: OPERATOR_PASSWORD_HASH is empty, /api is open to anyone")
		return func(c *gin.Context) { c.Next() }
	}
	hash := []byte(passwordHash)
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if !ok || user != username || bcrypt.CompareHashAndPassword(hash, []byte(pass)) != nil {
			c.Header("WWW-Authenticate", `Basic realm="delivery-ledger"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request, plus any errors handlers attached.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			logger.Error("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Info("request", fields...)
	}
}
