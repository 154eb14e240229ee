package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"person-manager-api/internal/infrastructure/metrics"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB
	masked         = "********"
)

var sensitiveFields = []string{"password"}

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil {
			var buf bytes.Buffer
			_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
			rest, _ := io.ReadAll(c.Request.Body)
			_ = c.Request.Body.Close()
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf.Bytes()), bytes.NewReader(rest)))
			body = maskBody(buf.Bytes())
		}

		c.Next()

		if mCounter != nil {
			mCounter.WithLabelValues(metrics.AppRequests).Inc()
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if p := CurrentPerson(c); p != nil {
			fields = append(fields, zap.Uint64("person_id", uint64(p.ID)))
		}

		logger.Info("HTTP request", fields...)
	}
}

// maskBody hides sensitive values of a JSON object body. Bodies that are not
// a complete JSON object are logged only when they cannot hold a password.
func maskBody(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		for _, f := range sensitiveFields {
			if bytes.Contains(b, []byte(f)) {
				return "<unparsed body omitted>"
			}
		}
		return string(b)
	}

	for _, f := range sensitiveFields {
		if _, ok := m[f]; ok {
			m[f] = masked
		}
	}
	out, err := json.Marshal(m)
	if err != nil {
		return "<body omitted>"
	}
	return string(out)
}
