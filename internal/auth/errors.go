package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error はハンドラー境界で構造化レスポンスへ変換されるエラーです。
// Field は UI がハイライトすべき入力欄を示します（任意）。
type Error struct {
	Status  int
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newValidationError(field, message string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Field:   field,
		Message: message,
	}
}

// errInvalidCredentials は識別子とパスワードのどちらが誤っていたかを
// 区別できない文言に固定しています。
var errInvalidCredentials = &Error{
	Status:  http.StatusUnauthorized,
	Field:   "email",
	Message: "メールアドレスまたはパスワードが正しくありません",
}

var errRateLimited = &Error{
	Status:  http.StatusTooManyRequests,
	Field:   "email",
	Message: "ログイン試行回数が上限に達しました。しばらくしてから再度お試しください",
}

// InternalErrorMessage は 500 応答に使う定型文です。内部詳細は含めません。
const InternalErrorMessage = "サーバー内部でエラーが発生しました"

// LoginResponse は /api/login のレスポンスボディです。
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Field   string     `json:"field,omitempty"`
	User    *LoginUser `json:"user,omitempty"`
}

// LoginUser はログイン成功時に返すユーザー情報です。パスワードは含みません。
type LoginUser struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	RememberMe bool   `json:"rememberMe"`
}

// respondWithError はエラーを仕分けて構造化レスポンスへ変換します。
// 想定外のエラーは詳細を伏せた 500 に丸めます。
func respondWithError(c *gin.Context, err error) {
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, LoginResponse{
			Success: false,
			Message: apiErr.Message,
			Field:   apiErr.Field,
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, LoginResponse{
			Success: false,
			Message: "リクエストがタイムアウトしました",
		})
	default:
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Success: false,
			Message: InternalErrorMessage,
		})
	}
}
