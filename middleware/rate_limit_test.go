package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"restaurants/config"
	"restaurants/models"
)

func TestRateLimiterAllow(t *testing.T) {
	l := NewRateLimiter(map[string]config.RateRule{
		config.LimitAuthLogin: {Window: time.Minute, Limit: 2},
	})
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _, _ := l.Allow(config.LimitAuthLogin, "ip:1.2.3.4"); !ok {
			t.Fatalf("hit %d rejected", i+1)
		}
	}
	ok, _, retry := l.Allow(config.LimitAuthLogin, "ip:1.2.3.4")
	if ok {
		t.Fatal("third hit allowed")
	}
	if retry != time.Minute {
		t.Errorf("retry = %s, want 1m", retry)
	}

	if ok, _, _ := l.Allow(config.LimitAuthLogin, "ip:5.6.7.8"); !ok {
		t.Error("other caller limited")
	}
	if ok, _, _ := l.Allow("unknown-rule", "ip:1.2.3.4"); !ok {
		t.Error("unknown rule limited")
	}

	now = now.Add(time.Minute)
	if ok, remaining, _ := l.Allow(config.LimitAuthLogin, "ip:1.2.3.4"); !ok || remaining != 1 {
		t.Errorf("new window: ok=%v remaining=%d", ok, remaining)
	}
}

func TestRateLimiterSweep(t *testing.T) {
	l := NewRateLimiter(map[string]config.RateRule{
		config.LimitPublicReviews: {Window: time.Minute, Limit: 5},
	})
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow(config.LimitPublicReviews, "a")
	now = now.Add(30 * time.Second)
	l.Allow(config.LimitPublicReviews, "b")
	now = now.Add(45 * time.Second)

	l.Sweep()
	if l.hits.Count() != 1 || !l.hits.Has(config.LimitPublicReviews+"|b") {
		t.Errorf("after sweep: %v", l.hits.Keys())
	}
}

func TestLimitMiddleware(t *testing.T) {
	l := NewRateLimiter(map[string]config.RateRule{
		config.LimitAuthRegister: {Window: time.Minute, Limit: 1},
		config.LimitAdminSoft:    {Window: time.Minute, Limit: 1},
	})

	r := gin.New()
	r.POST("/register", l.Limit(config.LimitAuthRegister), func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/admin", func(c *gin.Context) {
		c.Set(CurrentUserIDKey, uint(1))
		c.Set(CurrentUserRoleKey, models.RoleAdmin)
	}, l.Limit(config.LimitAdminSoft), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(http.MethodPost, "/register"); w.Code != http.StatusCreated {
		t.Fatalf("first register = %d", w.Code)
	}
	w := do(http.MethodPost, "/register")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second register = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}

	for i := 0; i < 3; i++ {
		if w := do(http.MethodGet, "/admin"); w.Code != http.StatusOK {
			t.Errorf("admin request %d = %d, want 200", i+1, w.Code)
		}
	}
}
