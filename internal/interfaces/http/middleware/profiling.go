package middleware

import (
	"context"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// unprofiledPrefixes are served without pprof labels
var unprofiledPrefixes = []string{"/health", "/swagger"}

// Profiling labels the goroutine serving each API request with its method,
// route and resource so CPU profiles can be split per endpoint.
func Profiling() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range unprofiledPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}
		telemetry.WithProfilingLabels(c.Request.Context(), profilingLabels(c), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	return map[string]string{
		telemetry.ProfilingLabelMethod:   c.Request.Method,
		telemetry.ProfilingLabelRoute:    route,
		telemetry.ProfilingLabelResource: resourceFromRoute(route),
	}
}

var versionSegment = regexp.MustCompile(`^[vV][0-9]+$`)

// resourceFromRoute maps "/api/v1/product-orders/:id" to "product-orders"
func resourceFromRoute(route string) string {
	for seg := range strings.SplitSeq(route, "/") {
		if seg == "" || seg == "api" || seg[0] == ':' || versionSegment.MatchString(seg) {
			continue
		}
		return seg
	}
	return ""
}
