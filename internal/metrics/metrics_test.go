package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareIncrementsRequestCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	InitMetrics()

	r := gin.New()
	r.Use(Middleware())
	r.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/test", "200"))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	after := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/test", "200"))
	if after != before+1 {
		t.Fatalf("expected counter to advance by 1, got %v -> %v", before, after)
	}
}

func TestRegisterExposesMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	InitMetrics()

	r := gin.New()
	Register(r, "/metrics")

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("expected body from /metrics, got empty")
	}
}
