package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		redisErr   error
		wantStatus int
		wantBody   string
	}{
		{"all up", nil, http.StatusOK, `"redis":"up"`},
		{"redis down", errors.New("connection refused"), http.StatusServiceUnavailable, `"redis":"down"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(map[string]Pinger{
				"database": PingFunc(func(context.Context) error { return nil }),
				"redis":    PingFunc(func(context.Context) error { return tt.redisErr }),
			}, logger.Nop())

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			h.HealthCheck(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Contains(t, w.Body.String(), `"database":"up"`)
		})
	}
}
