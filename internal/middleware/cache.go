package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// cachedResponse is one stored GET response body
type cachedResponse struct {
	status      int
	contentType string
	body        []byte
	expiresAt   time.Time
}

// ResponseCache stores successful GET responses in memory for a fixed TTL,
// keyed by request URI. Entries are evicted lazily on lookup.
type ResponseCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cachedResponse
}

// NewResponseCache creates a cache with the given TTL
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		ttl:     ttl,
		entries: make(map[string]cachedResponse),
	}
}

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Handler serves cached bodies for repeated GETs on the wrapped routes
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI

		rc.mu.RLock()
		entry, ok := rc.entries[key]
		rc.mu.RUnlock()

		if ok && time.Now().Before(entry.expiresAt) {
			c.Data(entry.status, entry.contentType, entry.body)
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		if capture.Status() != http.StatusOK {
			return
		}

		rc.mu.Lock()
		rc.entries[key] = cachedResponse{
			status:      capture.Status(),
			contentType: capture.Header().Get("Content-Type"),
			body:        capture.buf.Bytes(),
			expiresAt:   time.Now().Add(rc.ttl),
		}
		rc.mu.Unlock()
	}
}

// Invalidate drops every cached entry
func (rc *ResponseCache) Invalidate() {
	rc.mu.Lock()
	rc.entries = make(map[string]cachedResponse)
	rc.mu.Unlock()
}
