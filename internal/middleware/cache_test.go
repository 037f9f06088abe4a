package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/truelife/learningapp/internal/middleware"
)

func newCachedRouter(ttl time.Duration) (*gin.Engine, *middleware.ResponseCache, *int) {
	gin.SetMode(gin.TestMode)
	hits := 0
	cache := middleware.NewResponseCache(ttl)
	router := gin.New()
	router.GET("/courses", cache.Handler(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	return router, cache, &hits
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestResponseCacheServesSecondRequestFromCache(t *testing.T) {
	router, _, hits := newCachedRouter(time.Minute)

	first := get(router, "/courses")
	second := get(router, "/courses")

	assert.Equal(t, 1, *hits, "handler must run once")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestResponseCacheKeysOnFullURI(t *testing.T) {
	router, _, hits := newCachedRouter(time.Minute)

	get(router, "/courses?page=1")
	get(router, "/courses?page=2")

	assert.Equal(t, 2, *hits, "different query strings are different entries")
}

func TestResponseCacheExpires(t *testing.T) {
	router, _, hits := newCachedRouter(20 * time.Millisecond)

	get(router, "/courses")
	time.Sleep(30 * time.Millisecond)
	get(router, "/courses")

	assert.Equal(t, 2, *hits)
}

func TestResponseCacheInvalidate(t *testing.T) {
	router, cache, hits := newCachedRouter(time.Minute)

	get(router, "/courses")
	cache.Invalidate()
	get(router, "/courses")

	assert.Equal(t, 2, *hits)
}

func TestResponseCacheSkipsErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hits := 0
	cache := middleware.NewResponseCache(time.Minute)
	router := gin.New()
	router.GET("/broken", cache.Handler(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("attempt %d", hits)})
	})

	get(router, "/broken")
	get(router, "/broken")

	assert.Equal(t, 2, hits, "error responses are never cached")
}
