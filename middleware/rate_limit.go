package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/engineer-english/eigo_api/shared"
)

type rateLimitConfig struct {
	MaxRequests int
	WindowSize  time.Duration
}

// cacheClient is the slice of RedisService the limiter needs. Declared here
// so this package does not depend on the services package.
type cacheClient interface {
	Enabled() bool
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

const redisServiceID = "redis_svc"

// RateLimitMiddleware throttles abuse-prone endpoints. Counters live in
// redis when the cache is enabled, otherwise in process memory.
type RateLimitMiddleware struct {
	appContext.DefaultService

	cache cacheClient

	configs map[string]rateLimitConfig

	mutex   sync.Mutex
	windows map[string]*localWindow
}

type localWindow struct {
	count   int
	resetAt time.Time
}

const RATE_LIMIT_MIDDLEWARE_SVC = "rate_limit"

func (svc *RateLimitMiddleware) Id() string {
	return RATE_LIMIT_MIDDLEWARE_SVC
}

func (svc *RateLimitMiddleware) Configure(ctx *appContext.Context) error {
	svc.configs = map[string]rateLimitConfig{
		"auth": {
			MaxRequests: 10,
			WindowSize:  15 * time.Minute,
		},
		"lesson_complete": {
			MaxRequests: 60,
			WindowSize:  time.Hour,
		},
		"admin_seed": {
			MaxRequests: 5,
			WindowSize:  time.Minute,
		},
	}
	svc.windows = make(map[string]*localWindow)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitMiddleware) Start() error {
	svc.cache = svc.Service(redisServiceID).(cacheClient)
	return nil
}

// AuthRateLimit throttles register/login attempts per client IP.
func (svc *RateLimitMiddleware) AuthRateLimit() fiber.Handler {
	return svc.limit("auth", func(c *fiber.Ctx) string {
		return clientIP(c)
	})
}

// LessonCompletionRateLimit throttles completion submissions per user, or
// per IP for anonymous callers.
func (svc *RateLimitMiddleware) LessonCompletionRateLimit() fiber.Handler {
	return svc.limit("lesson_complete", func(c *fiber.Ctx) string {
		if userID, ok := c.Locals(shared.UserID).(string); ok && userID != "" {
			return userID
		}
		return clientIP(c)
	})
}

// SeedRateLimit keeps reconciliation runs from being hammered.
func (svc *RateLimitMiddleware) SeedRateLimit() fiber.Handler {
	return svc.limit("admin_seed", func(c *fiber.Ctx) string {
		return clientIP(c)
	})
}

func (svc *RateLimitMiddleware) limit(endpointType string, identify func(c *fiber.Ctx) string) fiber.Handler {
	config := svc.configs[endpointType]

	return func(c *fiber.Ctx) error {
		identifier := identify(c)

		allowed, err := svc.isAllowed(identifier, endpointType, config)
		if err != nil {
			log.WithError(err).Warnf("Rate limit check failed for %s", endpointType)
			return c.Next()
		}

		if !allowed {
			return shared.ResponseJSON(c, fiber.StatusTooManyRequests, "Rate limit exceeded", nil)
		}

		return c.Next()
	}
}

func (svc *RateLimitMiddleware) isAllowed(identifier, endpointType string, config rateLimitConfig) (bool, error) {
	if svc.cache.Enabled() {
		return svc.isAllowedRedis(identifier, endpointType, config)
	}
	return svc.isAllowedLocal(identifier, endpointType, config), nil
}

func (svc *RateLimitMiddleware) isAllowedRedis(identifier, endpointType string, config rateLimitConfig) (bool, error) {
	ctx := context.Background()
	key := fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier)

	count, err := svc.cache.Increment(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := svc.cache.Expire(ctx, key, config.WindowSize); err != nil {
			return false, err
		}
	}

	return count <= int64(config.MaxRequests), nil
}

func (svc *RateLimitMiddleware) isAllowedLocal(identifier, endpointType string, config rateLimitConfig) bool {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	key := endpointType + ":" + identifier
	now := time.Now()

	window, ok := svc.windows[key]
	if !ok || now.After(window.resetAt) {
		svc.windows[key] = &localWindow{count: 1, resetAt: now.Add(config.WindowSize)}
		return true
	}

	window.count++
	return window.count <= config.MaxRequests
}

func clientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return c.IP()
}
