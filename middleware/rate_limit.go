package middlewares

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"

	"restaurants/config"
	"restaurants/models"
)

type rateWindow struct {
	start  time.Time
	window time.Duration
	count  int
}

// RateLimiter counts requests per rule and caller in fixed windows.
type RateLimiter struct {
	rules map[string]config.RateRule
	hits  cmap.ConcurrentMap[string, rateWindow]
	now   func() time.Time
}

func NewRateLimiter(rules map[string]config.RateRule) *RateLimiter {
	return &RateLimiter{
		rules: rules,
		hits:  cmap.New[rateWindow](),
		now:   time.Now,
	}
}

// Allow records one hit for key under rule. When the limit is exceeded it
// returns false and the time left in the current window.
func (l *RateLimiter) Allow(rule, key string) (bool, int, time.Duration) {
	r, ok := l.rules[rule]
	if !ok || r.Limit <= 0 {
		return true, 0, 0
	}

	now := l.now()
	w := l.hits.Upsert(rule+"|"+key, rateWindow{}, func(exist bool, current, _ rateWindow) rateWindow {
		if !exist || now.Sub(current.start) >= current.window {
			return rateWindow{start: now, window: r.Window, count: 1}
		}
		current.count++
		return current
	})

	remaining := r.Limit - w.count
	if remaining < 0 {
		return false, 0, w.start.Add(w.window).Sub(now)
	}
	return true, remaining, 0
}

// Sweep drops windows that have ended.
func (l *RateLimiter) Sweep() {
	now := l.now()
	for key, w := range l.hits.Items() {
		if now.Sub(w.start) >= w.window {
			l.hits.RemoveCb(key, func(_ string, v rateWindow, exists bool) bool {
				return exists && now.Sub(v.start) >= v.window
			})
		}
	}
}

// Run sweeps every interval until ctx is done.
func (l *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// Limit enforces rule. Authenticated callers are keyed by user id, anonymous
// ones by client IP. Admins are not limited on the admin rule.
func (l *RateLimiter) Limit(rule string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, role, ok := CurrentUser(c); ok {
			if role == models.RoleAdmin && rule == config.LimitAdminSoft {
				log.Printf("[ADMIN] user %d %s %s bypassed rate limit", userID, c.Request.Method, c.Request.URL.Path)
				c.Next()
				return
			}
			key = fmt.Sprintf("user:%d", userID)
		}

		allowed, remaining, retryAfter := l.Allow(rule, key)
		if r, ok := l.rules[rule]; ok {
			c.Header("X-RateLimit-Limit", strconv.Itoa(r.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			log.Printf("[RATE] %s exceeded %s on %s", key, rule, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": 0, "mess": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
