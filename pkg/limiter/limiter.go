package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitors struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	ttl   time.Duration
	items map[string]*visitor
}

func newVisitors(rps int, burst int, ttl time.Duration) *visitors {
	return &visitors{
		rps:   rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
		items: make(map[string]*visitor),
	}
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	for key, item := range v.items {
		if now.Sub(item.lastSeen) > v.ttl {
			delete(v.items, key)
		}
	}

	item, ok := v.items[ip]
	if !ok {
		item = &visitor{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.items[ip] = item
	}
	item.lastSeen = now

	return item.limiter
}

// Limit throttles requests per client IP. Idle clients are forgotten after ttl.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	v := newVisitors(rps, burst, ttl)

	return func(c *gin.Context) {
		if !v.get(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
