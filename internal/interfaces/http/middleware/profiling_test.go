package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestResourceFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/product-orders/:id": "product-orders",
		"/api/v1/customer-details":   "customer-details",
		"/api/V2/shopping-carts/:id": "shopping-carts",
		"/api/vx/product-categories": "vx",
		"/api/v1/system/info":        "system",
		"/api/v1/:id":                "",
		"":                           "",
	}
	for route, want := range tests {
		assert.Equal(t, want, resourceFromRoute(route), route)
	}
}

func TestProfiling(t *testing.T) {
	var labels map[string]string
	router := gin.New()
	router.Use(Profiling())
	router.GET("/api/v1/product-categories/:id", func(c *gin.Context) {
		labels = profilingLabels(c)
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/swagger/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/swagger/index.html", "/api/v1/product-categories/7"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	assert.Equal(t, "GET", labels[telemetry.ProfilingLabelMethod])
	assert.Equal(t, "/api/v1/product-categories/:id", labels[telemetry.ProfilingLabelRoute])
	assert.Equal(t, "product-categories", labels[telemetry.ProfilingLabelResource])
}
