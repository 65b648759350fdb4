package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tmm22/speechkit/errors"
	"github.com/tmm22/speechkit/logger"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequestID_Generated(t *testing.T) {
	engine := newEngine()
	engine.Use(RequestID())

	var seen string
	engine.GET("/", func(c *gin.Context) {
		seen = c.GetString(ContextRequestID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	header := w.Header().Get(HeaderRequestID)
	if header == "" {
		t.Fatal("no X-Request-Id on response")
	}
	if seen != header {
		t.Errorf("context id %q != header id %q", seen, header)
	}
}

func TestRequestID_Preserved(t *testing.T) {
	engine := newEngine()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "caller-id-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "caller-id-1" {
		t.Errorf("X-Request-Id = %q", got)
	}
}

func TestRecovery(t *testing.T) {
	engine := newEngine()
	engine.Use(Recovery(logger.NewDefault("test")))
	engine.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}

	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if resp.Error.Code != apperrors.ErrCodeInternal {
		t.Errorf("code = %s", resp.Error.Code)
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	engine := newEngine()
	engine.Use(RequestID(), RequestLogger(logger.NewDefault("test")))
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d", w.Code)
	}
}
