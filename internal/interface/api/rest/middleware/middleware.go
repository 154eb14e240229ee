package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Base returns the engine-wide chain. RequestLogGin wraps ErrorEnvelope so
// the access log sees the status the envelope wrote.
func Base(logger *zap.Logger, mCounter *prometheus.CounterVec) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		Recovery(logger),
		RequestLogGin(logger, mCounter),
		ErrorEnvelope(logger),
	}
}
