package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/login-demo/internal/config"
	"github.com/yourusername/login-demo/internal/logx"
	"github.com/yourusername/login-demo/internal/ratelimit"
)

// Manager はログイン認証のハンドラーと依存をまとめた構造体です。
type Manager struct {
	cfg     *config.Config
	store   Store
	limiter *ratelimit.Limiter
}

// NewManager は認証マネージャーを作成します。
func NewManager(cfg *config.Config, store Store, limiter *ratelimit.Limiter) *Manager {
	return &Manager{
		cfg:     cfg,
		store:   store,
		limiter: limiter,
	}
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Login は POST /api/login のハンドラーです。
// レート制限ゲート → 検証 → サニタイズ → 照合 の順で処理し、
// どの経路でも構造化された verdict を返します。
func (m *Manager) Login(c *gin.Context) {
	ctx := c.Request.Context()
	ip := c.ClientIP()

	// ゲートはハンドラー本体より先に通す。予約は資格情報の正誤と無関係で、
	// 成功時のみ後から返却される。
	reservation, err := m.limiter.Reserve(ctx, ip)
	if err != nil {
		logx.Errorf(logx.Fields{"clientIP": ip}, "rate limiter unavailable: %v", err)
		respondWithError(c, err)
		return
	}
	if !reservation.Allowed {
		retryAfter := int64(reservation.RetryAfter.Seconds() + 0.5)
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
		logx.Warnf(logx.Fields{"clientIP": ip}, "login attempt rate limited")
		respondWithError(c, errRateLimited)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, newValidationError("", "email と password を JSON で送ってください"))
		return
	}

	if req.Email == "" {
		respondWithError(c, newValidationError("email", "メールアドレスを入力してください"))
		return
	}
	if req.Password == "" {
		respondWithError(c, newValidationError("password", "パスワードを入力してください"))
		return
	}

	identifier := sanitizeField(req.Email)
	password := sanitizeField(req.Password)

	if verr := m.validateLengths(identifier, password); verr != nil {
		respondWithError(c, verr)
		return
	}

	cred, found := m.store.Lookup(identifier)
	matched := found && constantTimeEquals(cred.Password, password)

	// 判定の前に遅延を挟み、応答時間から識別子の実在を推測されにくくする
	m.verdictDelay(ctx)

	if !matched {
		logx.Infof(logx.Fields{"clientIP": ip, "identifier": identifier}, "login failed")
		respondWithError(c, errInvalidCredentials)
		return
	}

	// 成功したログインは試行回数に数えない
	if err := m.limiter.Forgive(ctx, ip, reservation); err != nil {
		logx.Warnf(logx.Fields{"clientIP": ip}, "failed to forgive rate limit reservation: %v", err)
	}

	logx.Infof(logx.Fields{"clientIP": ip, "username": cred.Username}, "login succeeded")
	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: fmt.Sprintf("おかえりなさい、%sさん", cred.DisplayName),
		User: &LoginUser{
			Email:      cred.Email,
			Username:   cred.Username,
			RememberMe: req.RememberMe,
		},
	})
}

// validateLengths はサニタイズ後の値に長さのルールを適用します。
// 長さはバイト数ではなく文字数（ルーン数）で数えます。
func (m *Manager) validateLengths(identifier, password string) *Error {
	identifierLen := utf8.RuneCountInString(identifier)
	passwordLen := utf8.RuneCountInString(password)

	if identifierLen < m.cfg.MinIdentifierLen {
		return newValidationError("email",
			fmt.Sprintf("メールアドレスまたはユーザー名は%d文字以上で入力してください", m.cfg.MinIdentifierLen))
	}
	if passwordLen < m.cfg.MinPasswordLen {
		return newValidationError("password",
			fmt.Sprintf("パスワードは%d文字以上で入力してください", m.cfg.MinPasswordLen))
	}
	if identifierLen > m.cfg.MaxFieldLen {
		return newValidationError("email", "入力値が長すぎます")
	}
	if passwordLen > m.cfg.MaxFieldLen {
		return newValidationError("password", "入力値が長すぎます")
	}
	return nil
}

// verdictDelay は設定された範囲でランダムな遅延を挿入します。
// この goroutine のみを停止させるため、他のリクエスト処理は妨げません。
func (m *Manager) verdictDelay(ctx context.Context) {
	delay := m.cfg.MinVerdictDelay
	if span := m.cfg.MaxVerdictDelay - m.cfg.MinVerdictDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func constantTimeEquals(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
