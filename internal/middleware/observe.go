package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	metaKey      = "response_meta"
	metaStartKey = "response_meta_start"

	unmatchedRoute = "unmatched"
)

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Metrics reports every request to observer, labelled by route template.
// Requests that match no route share a single label.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		observer.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// WithResponseMeta starts the per-request metadata that handlers attach to
// the response envelope.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Set(metaKey, gin.H{})
		c.Next()
	}
}

// SetMeta attaches key to the response metadata.
func SetMeta(c *gin.Context, key string, value any) {
	meta(c)[key] = value
}

// SetCacheHit records whether the response was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, "cache_hit", hit)
}

// ResponseMeta returns the metadata gathered so far, stamped with the time
// spent on the request.
func ResponseMeta(c *gin.Context) gin.H {
	m := meta(c)
	if start, ok := c.Get(metaStartKey); ok {
		if t, ok := start.(time.Time); ok {
			m["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	return m
}

func meta(c *gin.Context) gin.H {
	if v, ok := c.Get(metaKey); ok {
		if m, ok := v.(gin.H); ok {
			return m
		}
	}
	m := gin.H{}
	c.Set(metaKey, m)
	if _, ok := c.Get(metaStartKey); !ok {
		c.Set(metaStartKey, time.Now())
	}
	return m
}
