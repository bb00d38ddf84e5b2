package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// pruneThreshold bounds the per-IP limiter map; once crossed, entries idle
// for longer than the window are dropped.
const pruneThreshold = 10000

// RateLimit allows up to max requests per window for each client IP, with
// bursts up to max.
func RateLimit(max int, window time.Duration) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var mu sync.Mutex
	clients := make(map[string]*client)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		cl, ok := clients[ip]
		if !ok {
			cl = &client{limiter: rate.NewLimiter(rate.Limit(float64(max)/window.Seconds()), max)}
			clients[ip] = cl
		}
		cl.lastSeen = time.Now()
		if len(clients) > pruneThreshold {
			cutoff := time.Now().Add(-window)
			for ip, cl := range clients {
				if cl.lastSeen.Before(cutoff) {
					delete(clients, ip)
				}
			}
		}
		mu.Unlock()

		if !cl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests, please try again later.",
			})
			return
		}
		c.Next()
	}
}
