package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lingua-center-api/pkg/middleware/requestid"
)

const (
	responseMetaKey = "response_meta"
	requestStartKey = "request_started_at"
)

// WithResponseMeta opens the meta block that handlers render into the envelope.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from the Redis cache.
func SetCacheHit(c *gin.Context, hit bool) {
	meta(c)["cache_hit"] = hit
}

// ResponseMeta returns the meta block for the response being written,
// stamped with the request id and the time spent since WithResponseMeta ran.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	m := meta(c)
	if v, ok := c.Get(requestStartKey); ok {
		if started, ok := v.(time.Time); ok {
			m["processing_time_ms"] = time.Since(started).Milliseconds()
		}
	}
	if id := requestid.Value(c); id != "" {
		m["request_id"] = id
	}
	return m
}

func meta(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(responseMetaKey); ok {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	m := map[string]interface{}{}
	c.Set(responseMetaKey, m)
	return m
}
