package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller's address for rate limiting. Proxy
// headers win over the socket address so limits apply to the end client,
// not the load balancer.
func getClientIP(c *gin.Context) string {
	// X-Forwarded-For carries the whole proxy chain; the originating
	// client is the first entry.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is usually "ip:port"; the port must not split one
	// client into many limiter buckets.
	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
