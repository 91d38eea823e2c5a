package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apitypes "github.com/scashdap/v1/internal/api/http/types"
)

// DefaultRateLimitExpiry 客户端空闲超过该时长后移除其限流器
const DefaultRateLimitExpiry = 3 * time.Minute

// RateLimit 按客户端IP限流，每秒 limit 个请求，突发上限同为 limit
// 同一个 RateLimit 实例的所有路由共享限流器
type RateLimit struct {
	limit     int
	expiresIn time.Duration
	now       func() time.Time

	mu          sync.Mutex
	visitors    map[string]*visitor
	lastCleanup time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimit 创建限流中间件，limit 为每秒请求数，0 表示不限流
func NewRateLimit(limit int) *RateLimit {
	return &RateLimit{
		limit:       limit,
		expiresIn:   DefaultRateLimitExpiry,
		now:         time.Now,
		visitors:    make(map[string]*visitor),
		lastCleanup: time.Now(),
	}
}

// Middleware 返回Gin中间件
func (m *RateLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limit <= 0 {
			c.Next()
			return
		}
		if !m.allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			WriteError(c, http.StatusTooManyRequests, apitypes.ErrRateLimitResponse(m.limit))
			return
		}
		c.Next()
	}
}

func (m *RateLimit) allow(clientID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	v, ok := m.visitors[clientID]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(m.limit), m.limit)}
		m.visitors[clientID] = v
	}
	v.lastSeen = now

	if now.Sub(m.lastCleanup) > m.expiresIn {
		m.cleanupLocked(now)
	}
	return v.limiter.AllowN(now, 1)
}

// cleanupLocked 移除空闲超时的客户端，调用方持有 m.mu
func (m *RateLimit) cleanupLocked(now time.Time) {
	for id, v := range m.visitors {
		if now.Sub(v.lastSeen) > m.expiresIn {
			delete(m.visitors, id)
		}
	}
	m.lastCleanup = now
}
