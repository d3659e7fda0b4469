package logger

import (
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CorrelationIDHeader is echoed on every response so clients and logs can be matched.
const CorrelationIDHeader = "X-Correlation-ID"

const correlationIDKey = "correlation_id"

var log *zap.Logger = zap.NewNop()

// Init builds the process-wide logger, honoring the LOG_LEVEL environment variable.
func Init() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	log = built
	return built, nil
}

// L returns the process-wide logger. Before Init it is a no-op logger.
func L() *zap.Logger {
	return log
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Middleware attaches a correlation ID to each request and logs its completion.
// An inbound X-Correlation-ID is reused so callers can stitch traces together.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String(correlationIDKey, id),
		)
	}
}

// CorrelationID returns the request's correlation ID, or "" outside the middleware.
func CorrelationID(c *gin.Context) string {
	if id, ok := c.Get(correlationIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
