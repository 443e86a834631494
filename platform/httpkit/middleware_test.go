package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"solar_feasibility_backend/platform/logger"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiter := NewAnalyzeRateLimiter(rps, burst, logger.New("test"))

	engine := gin.New()
	engine.POST("/limited", limiter.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func hit(engine *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit_BurstThenTooManyRequests(t *testing.T) {
	// Zero refill rate so only the burst allowance passes.
	engine := newLimitedRouter(0, 2)

	for i := 0; i < 2; i++ {
		if code := hit(engine); code != http.StatusOK {
			t.Fatalf("request %d within burst: expected 200, got %d", i+1, code)
		}
	}
	if code := hit(engine); code != http.StatusTooManyRequests {
		t.Fatalf("request beyond burst: expected 429, got %d", code)
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request ID header")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	engine.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied" {
		t.Fatalf("expected the caller's request ID to be echoed, got %q", got)
	}
}
