// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port      string // APIサーバーのポート番号
	GinMode   string // Ginの実行モード (debug, release, test)
	StaticDir string // ログインフォームの静的ファイルを配置するディレクトリ

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// リクエスト制限
	MaxBodyBytes   int64         // リクエストボディの最大サイズ（バイト）
	RequestTimeout time.Duration // 1リクエストの処理時間上限

	// 入力値の検証ルール
	MinIdentifierLen int // 識別子（メール/ユーザー名）の最小文字数
	MinPasswordLen   int // パスワードの最小文字数
	MaxFieldLen      int // 各フィールドの最大文字数

	// レート制限設定
	MaxLoginAttempts  int           // ウィンドウ内で許可するログイン試行回数
	LoginWindow       time.Duration // 試行回数を数えるスライディングウィンドウ幅
	RateLimitRedisURL string        // レート制限カウンタ用Redis接続URL（空ならインメモリ）

	// タイミング攻撃対策
	MinVerdictDelay time.Duration // 判定レスポンス前に挿入する遅延の下限
	MaxVerdictDelay time.Duration // 判定レスポンス前に挿入する遅延の上限
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		StaticDir: getEnv("STATIC_DIR", "web"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// リクエスト制限
		MaxBodyBytes:   getEnvAsInt64("MAX_BODY_BYTES", 10*1024), // 10KB
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT_SECONDS", 30),

		// 入力値の検証ルール
		MinIdentifierLen: getEnvAsInt("MIN_IDENTIFIER_LEN", 3),
		MinPasswordLen:   getEnvAsInt("MIN_PASSWORD_LEN", 6),
		MaxFieldLen:      getEnvAsInt("MAX_FIELD_LEN", 100),

		// レート制限設定
		MaxLoginAttempts:  getEnvAsInt("MAX_LOGIN_ATTEMPTS", 5),
		LoginWindow:       getEnvAsDuration("LOGIN_WINDOW_SECONDS", 15*60),
		RateLimitRedisURL: getEnv("RATE_LIMIT_REDIS_URL", ""),

		// タイミング攻撃対策
		MinVerdictDelay: getEnvAsMillis("MIN_VERDICT_DELAY_MS", 100),
		MaxVerdictDelay: getEnvAsMillis("MAX_VERDICT_DELAY_MS", 200),
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("MAX_LOGIN_ATTEMPTS must be positive")
	}
	if c.LoginWindow <= 0 {
		return fmt.Errorf("LOGIN_WINDOW_SECONDS must be positive")
	}
	if c.MaxVerdictDelay < c.MinVerdictDelay {
		return fmt.Errorf("MAX_VERDICT_DELAY_MS must not be smaller than MIN_VERDICT_DELAY_MS")
	}
	if c.MaxFieldLen < c.MinIdentifierLen || c.MaxFieldLen < c.MinPasswordLen {
		return fmt.Errorf("MAX_FIELD_LEN must not be smaller than the minimum lengths")
	}

	// ローカル開発では緩めに、本番モードでは厳格にチェックする想定
	if c.GinMode == "release" {
		if c.CORSAllowedOrigins == "" {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS is required in release mode")
		}
		if c.MaxBodyBytes <= 0 {
			return fmt.Errorf("MAX_BODY_BYTES is required in release mode")
		}
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsInt64 は環境変数を64ビット整数として取得します。
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration は秒数で指定された環境変数を time.Duration として取得します。
// defaultValue は秒数で指定します。
func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	valueStr := os.Getenv(key)
	value := defaultSeconds
	if valueStr != "" {
		parsed, err := strconv.Atoi(valueStr)
		if err == nil && parsed > 0 {
			value = parsed
		}
	}
	return time.Duration(value) * time.Second
}

// getEnvAsMillis はミリ秒で指定された環境変数を time.Duration として取得します。
// defaultValue はミリ秒で指定します。
func getEnvAsMillis(key string, defaultMillis int) time.Duration {
	valueStr := os.Getenv(key)
	value := defaultMillis
	if valueStr != "" {
		parsed, err := strconv.Atoi(valueStr)
		if err == nil && parsed >= 0 {
			value = parsed
		}
	}
	return time.Duration(value) * time.Millisecond
}
