package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys set on HTTP server spans
const (
	AttrShopID    = "shop.id"
	AttrRequestID = "http.request_id"
)

// TracingConfig holds HTTP tracing middleware configuration
type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// TracingWithConfig wraps otelgin and enriches the server span with the
// request id and the authenticated shop once the handler chain returns.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnricher copies request attributes onto the active span. It runs
// inside otelgin so the span is still open when the chain returns.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		attrs := make([]attribute.KeyValue, 0, 2)
		if id := GetRequestID(c); id != "" {
			attrs = append(attrs, attribute.String(AttrRequestID, id))
		}
		if shopID := GetShopID(c); shopID != "" {
			attrs = append(attrs, attribute.String(AttrShopID, shopID))
		}
		span.SetAttributes(attrs...)

		if status := c.Writer.Status(); status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
