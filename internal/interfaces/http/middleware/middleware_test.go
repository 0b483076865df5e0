package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/infrastructure/ratelimit"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(logger.Nop()))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyRequestID))
	})

	w := serve(engine, http.MethodGet, "/ping", nil)
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = serve(engine, http.MethodGet, "/ping", http.Header{HeaderRequestID: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.Nop()))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://bid.example"}))
	engine.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodGet, "/x", http.Header{"Origin": {"https://bid.example"}})
	assert.Equal(t, "https://bid.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(engine, http.MethodGet, "/x", http.Header{"Origin": {"https://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(engine, http.MethodOptions, "/x", http.Header{"Origin": {"https://bid.example"}})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "upload", 2, logger.Nop())
	engine := gin.New()
	engine.POST("/upload", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/upload", nil).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/upload", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodPost, "/upload", nil).Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	rl := NewRateLimiter(ratelimit.NewRedisRateLimiter(client), "upload", 1, logger.Nop())
	engine := gin.New()
	engine.POST("/upload", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/upload", nil).Code)

	disabled := NewRateLimiter(nil, "upload", 1, logger.Nop())
	engine = gin.New()
	engine.POST("/upload", disabled.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/upload", nil).Code)
}
