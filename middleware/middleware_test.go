package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"s7scheduling/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func writerRouter(key string) *gin.Engine {
	r := gin.New()
	r.Use(APIKey(key))
	r.GET("/read", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"can_write": CanWrite(c)})
	})
	r.POST("/write", RequireWriter(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		header    string
		readBody  string
		writeCode int
	}{
		{"open when no key configured", "", "", `{"can_write":true}`, http.StatusNoContent},
		{"valid bearer token", "secret", "Bearer secret", `{"can_write":true}`, http.StatusNoContent},
		{"missing header", "secret", "", `{"can_write":false}`, http.StatusUnauthorized},
		{"wrong key", "secret", "Bearer nope", `{"can_write":false}`, http.StatusUnauthorized},
		{"wrong scheme", "secret", "Basic secret", `{"can_write":false}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := writerRouter(tt.key)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/read", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.readBody, w.Body.String())

			w = httptest.NewRecorder()
			req = httptest.NewRequest(http.MethodPost, "/write", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.writeCode, w.Code)
		})
	}
}

func TestRequireWriter_Messages(t *testing.T) {
	r := writerRouter("secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
	assert.JSONEq(t, `{"error":"authorization header required"}`, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set("Authorization", "Bearer nope")
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"error":"invalid API key"}`, w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) {
		assert.Equal(t, c.GetString("request_id"), logging.RequestID(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc-123", fields["request_id"])
	assert.Equal(t, "/ok", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
