package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2, time.Minute)
	r := gin.New()
	r.Use(RateLimiter(limiter))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(r, http.MethodGet, "/ping", nil).Code)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(rate.Limit(1), 1, time.Minute)
	limiter.now = func() time.Time { return now }

	first := limiter.GetLimiter("10.0.0.1")
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))

	now = now.Add(30 * time.Second)
	limiter.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, limiter.Sweep())
	assert.Equal(t, 1, limiter.Len())
}

func TestCache(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0
	r := gin.New()
	r.Use(RequestID(), Cache(store, time.Minute))
	r.GET("/rooms", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.GET("/missing", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusNotFound, gin.H{"error": "nope"})
	})
	r.POST("/rooms", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/broken", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })

	first := perform(r, http.MethodGet, "/rooms", nil)
	require.Equal(t, http.StatusOK, first.Code)
	second := perform(r, http.MethodGet, "/rooms", nil)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.NotEqual(t, first.Header().Get(RequestIDHeader), second.Header().Get(RequestIDHeader))
	assert.Equal(t, 1, hits)

	t.Run("failed writes keep the cache", func(t *testing.T) {
		perform(r, http.MethodPost, "/broken", nil)
		perform(r, http.MethodGet, "/rooms", nil)
		assert.Equal(t, 1, hits)
	})

	t.Run("successful writes flush the cache", func(t *testing.T) {
		perform(r, http.MethodPost, "/rooms", nil)
		w := perform(r, http.MethodGet, "/rooms", nil)
		assert.JSONEq(t, `{"hits":2}`, w.Body.String())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		perform(r, http.MethodGet, "/missing", nil)
		perform(r, http.MethodGet, "/missing", nil)
		assert.Equal(t, 4, hits)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDHeader)) })

	w := perform(r, http.MethodGet, "/", nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = perform(r, http.MethodGet, "/", http.Header{RequestIDHeader: []string{"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
