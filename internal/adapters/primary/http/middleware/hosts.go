package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowedHosts rejects requests whose Host header is not in the allow list.
// A list containing "*" (or an empty list) allows everything.
func AllowedHosts(hosts []string) gin.HandlerFunc {
	allowAll := len(hosts) == 0
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		if h == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(h)] = true
	}

	return func(c *gin.Context) {
		if allowAll {
			c.Next()
			return
		}

		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if !allowed[strings.ToLower(host)] {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid host header"})
			return
		}
		c.Next()
	}
}
