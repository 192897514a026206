package middleware

import (
	"errors"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/dto/response"
)

// Recovery returns a middleware that recovers from panics. Broken client
// connections are logged without a response body since the peer is gone.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", GetRequestID(c)),
				}

				if isBrokenPipe(err) {
					logger.Warn("client connection broken", fields...)
					c.Abort()
					return
				}

				fields = append(fields, zap.String("stack", string(debug.Stack())))
				logger.Error("panic recovered", fields...)

				c.JSON(http.StatusInternalServerError, response.NewError[any]("internal server error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}

func isBrokenPipe(err any) bool {
	opErr, ok := err.(error)
	if !ok {
		return false
	}
	var syscallErr *os.SyscallError
	if errors.As(opErr, &syscallErr) {
		msg := strings.ToLower(syscallErr.Error())
		return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
	}
	return errors.Is(opErr, syscall.EPIPE) || errors.Is(opErr, syscall.ECONNRESET)
}
