// Package httpx carries the middleware shared by the storefront's HTTP
// surface: request ids and an access log that picks up the authenticated
// customer once auth has run, so one customer's cart and order calls can
// be followed across the log.
package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ridKey      = "rid"
	customerKey = "customerID"
)

// RequestID tags the request with an id, honoring one supplied by the
// caller, and echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// ReqID returns the id RequestID assigned, "" outside the middleware chain.
func ReqID(c *gin.Context) string {
	return c.GetString(ridKey)
}

// SetCustomerID records the authenticated customer for the rest of the
// chain. The auth middleware calls this after verifying the token.
func SetCustomerID(c *gin.Context, id string) {
	c.Set(customerKey, id)
}

// CustomerID returns the authenticated customer id, "" on public routes.
func CustomerID(c *gin.Context) string {
	return c.GetString(customerKey)
}

// Logger writes one access-log line per request after the handler ran.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		cust := CustomerID(c)
		if cust == "" {
			cust = "-"
		}
		log.Printf("[http] rid=%s cust=%s %s %s status=%d dur=%s",
			ReqID(c), cust, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
