// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/login-demo/internal/auth"
	"github.com/yourusername/login-demo/internal/config"
	"github.com/yourusername/login-demo/internal/logx"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（パニックは構造化された 500 に変換する）
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(recoveryHandler))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
	}
	router.Use(cors.New(corsConfig))

	// リクエストIDの付与とボディサイズ上限
	router.Use(requestIDMiddleware(), bodyLimitMiddleware(cfg.MaxBodyBytes))

	// ルーティングの設定
	if err := setupRoutes(router, cfg); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// サーバーの起動（Read/Write のタイムアウトが1リクエストの処理上限になる）
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}
	log.Printf("Starting API server on %s (mode: %s)", server.Addr, cfg.GinMode)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "login-demo-api",
		"version": "0.1.0",
	})
}

// handleMessage は GET /api/message のハンドラーです。固定の挨拶を返します。
func handleMessage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "ログインAPIへようこそ",
	})
}

// recoveryHandler はハンドラー内のパニックを詳細を伏せた 500 に変換します。
func recoveryHandler(c *gin.Context, err any) {
	logx.Errorf(logx.Fields{"path": c.Request.URL.Path}, "panic recovered: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, auth.LoginResponse{
		Success: false,
		Message: auth.InternalErrorMessage,
	})
}

// setupRoutes は API グループと静的ファイル配信の配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config) error {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	limiter, err := setupRateLimiter(cfg)
	if err != nil {
		return err
	}
	authManager := auth.NewManager(cfg, auth.DemoStore(), limiter)

	api := router.Group("/api")
	{
		api.POST("/login", authManager.Login)
		api.GET("/message", handleMessage)
	}

	// ログインフォームの静的ファイル
	setupStatic(router, cfg.StaticDir)
	return nil
}
