package logx

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

func TestHandlerKeepsTimeKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf))

	logger.Info("hello", "clientIP", "10.0.0.1")
	line := buf.String()

	// 時間属性がキーを失って ""=... の形で出力されてはならない
	if strings.Contains(line, `""=`) {
		t.Fatalf("time attr lost its key: %s", line)
	}
	pattern := regexp.MustCompile(`time="\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}"`)
	if !pattern.MatchString(line) {
		t.Fatalf("unexpected time format: %s", line)
	}
	if !strings.Contains(line, "msg=hello") {
		t.Fatalf("missing message: %s", line)
	}
	if !strings.Contains(line, "clientIP=10.0.0.1") {
		t.Fatalf("missing field: %s", line)
	}
}
