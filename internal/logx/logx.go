// Package logx は構造化ログのための薄いラッパーを提供します。
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// L はアプリケーション全体で共有する logger です。
var L = slog.New(newHandler(os.Stdout))

// Fields はログに添える属性の型エイリアスです。
// 例: logx.Infof(logx.Fields{"clientIP": ip}, "login failed")
type Fields = map[string]any

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// 時間は yyyy/MM/dd HH:mm:ss 形式に寄せる。キーは time のまま残す
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time()
				a.Value = slog.StringValue(t.Format("2006/01/02 15:04:05"))
			}
			return a
		},
	})
}

func toAttrs(fields Fields) []any {
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return attrs
}

// Debugf はデバッグレベルのログを出力します。
func Debugf(fields Fields, format string, args ...any) {
	L.Debug(fmt.Sprintf(format, args...), toAttrs(fields)...)
}

// Infof は情報レベルのログを出力します。
func Infof(fields Fields, format string, args ...any) {
	L.Info(fmt.Sprintf(format, args...), toAttrs(fields)...)
}

// Warnf は警告レベルのログを出力します。
func Warnf(fields Fields, format string, args ...any) {
	L.Warn(fmt.Sprintf(format, args...), toAttrs(fields)...)
}

// Errorf はエラーレベルのログを出力します。
func Errorf(fields Fields, format string, args ...any) {
	L.Error(fmt.Sprintf(format, args...), toAttrs(fields)...)
}
