package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records completed requests.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// MetricsMiddleware reports every request under its route template, so path parameters do not
// explode label cardinality. Unmatched routes are grouped as "unmatched".
func MetricsMiddleware(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
