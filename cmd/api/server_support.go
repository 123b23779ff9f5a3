package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/login-demo/internal/config"
	"github.com/yourusername/login-demo/internal/ratelimit"
)

const requestIDHeader = "X-Request-Id"

// requestIDMiddleware は各リクエストに一意なIDを付与します。
// ログとレスポンスヘッダーの突き合わせに使います。
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set("requestID", id)
		c.Next()
	}
}

// bodyLimitMiddleware はリクエストボディのサイズに上限を設けます。
// 上限を超えた読み取りはハンドラー側の bind エラーになります。
func bodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// setupRateLimiter は設定に応じてレート制限のバックエンドを選びます。
// Redis URL が指定されていれば共有カウンタ、なければインメモリです。
func setupRateLimiter(cfg *config.Config) (*ratelimit.Limiter, error) {
	if cfg.RateLimitRedisURL == "" {
		store := ratelimit.NewMemoryStore(cfg.MaxLoginAttempts, cfg.LoginWindow)
		return ratelimit.New(store), nil
	}

	opt, err := redis.ParseURL(cfg.RateLimitRedisURL)
	if err != nil {
		return nil, err
	}
	store := ratelimit.NewRedisStore(redis.NewClient(opt), cfg.MaxLoginAttempts, cfg.LoginWindow)
	return ratelimit.New(store), nil
}

// setupStatic はログインフォームの静的ファイル配信を設定します。
// 見つからないパスは index.html にフォールバックします（API パスを除く）。
func setupStatic(router *gin.Engine, staticDir string) {
	if staticDir == "" {
		return
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		c.File(filepath.Join(staticDir, "index.html"))
	})
}
