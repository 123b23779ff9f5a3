package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// 既定値の確認（環境変数は未設定の状態にしておく）
	for _, key := range []string{
		"PORT", "GIN_MODE", "STATIC_DIR", "CORS_ALLOWED_ORIGINS",
		"MAX_BODY_BYTES", "REQUEST_TIMEOUT_SECONDS",
		"MIN_IDENTIFIER_LEN", "MIN_PASSWORD_LEN", "MAX_FIELD_LEN",
		"MAX_LOGIN_ATTEMPTS", "LOGIN_WINDOW_SECONDS", "RATE_LIMIT_REDIS_URL",
		"MIN_VERDICT_DELAY_MS", "MAX_VERDICT_DELAY_MS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("unexpected Port: %s", cfg.Port)
	}
	if cfg.MaxBodyBytes != 10*1024 {
		t.Errorf("unexpected MaxBodyBytes: %d", cfg.MaxBodyBytes)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("unexpected RequestTimeout: %v", cfg.RequestTimeout)
	}
	if cfg.MinIdentifierLen != 3 || cfg.MinPasswordLen != 6 || cfg.MaxFieldLen != 100 {
		t.Errorf("unexpected validation rules: %+v", cfg)
	}
	if cfg.MaxLoginAttempts != 5 {
		t.Errorf("unexpected MaxLoginAttempts: %d", cfg.MaxLoginAttempts)
	}
	if cfg.LoginWindow != 15*time.Minute {
		t.Errorf("unexpected LoginWindow: %v", cfg.LoginWindow)
	}
	if cfg.MinVerdictDelay != 100*time.Millisecond || cfg.MaxVerdictDelay != 200*time.Millisecond {
		t.Errorf("unexpected verdict delays: %v / %v", cfg.MinVerdictDelay, cfg.MaxVerdictDelay)
	}
	if cfg.RateLimitRedisURL != "" {
		t.Errorf("unexpected RateLimitRedisURL: %s", cfg.RateLimitRedisURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_LOGIN_ATTEMPTS", "3")
	t.Setenv("LOGIN_WINDOW_SECONDS", "60")
	t.Setenv("MIN_VERDICT_DELAY_MS", "0")
	t.Setenv("MAX_VERDICT_DELAY_MS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("unexpected Port: %s", cfg.Port)
	}
	if cfg.MaxLoginAttempts != 3 {
		t.Errorf("unexpected MaxLoginAttempts: %d", cfg.MaxLoginAttempts)
	}
	if cfg.LoginWindow != time.Minute {
		t.Errorf("unexpected LoginWindow: %v", cfg.LoginWindow)
	}
	if cfg.MinVerdictDelay != 0 || cfg.MaxVerdictDelay != 0 {
		t.Errorf("unexpected verdict delays: %v / %v", cfg.MinVerdictDelay, cfg.MaxVerdictDelay)
	}
}

func TestValidateRejectsInvertedDelayBounds(t *testing.T) {
	cfg := &Config{
		MinIdentifierLen: 3,
		MinPasswordLen:   6,
		MaxFieldLen:      100,
		MaxLoginAttempts: 5,
		LoginWindow:      15 * time.Minute,
		MinVerdictDelay:  200 * time.Millisecond,
		MaxVerdictDelay:  100 * time.Millisecond,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted delay bounds")
	}
}

func TestValidateRejectsZeroAttempts(t *testing.T) {
	cfg := &Config{
		MinIdentifierLen: 3,
		MinPasswordLen:   6,
		MaxFieldLen:      100,
		MaxLoginAttempts: 0,
		LoginWindow:      15 * time.Minute,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero attempts")
	}
}
