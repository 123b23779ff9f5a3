// Package ratelimit は送信元アドレスごとのスライディングウィンドウ式レート制限を提供します。
package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store は試行枠の予約と取り消しを永続化層に委ねるためのインターフェースです。
type Store interface {
	// Reserve はウィンドウ内の古い試行を破棄した上で1枠を予約します。
	// 上限超過の場合は allowed=false と再試行までの待ち時間を返します。
	Reserve(ctx context.Context, key, member string) (allowed bool, retryAfter time.Duration, err error)

	// Forgive は予約済みの1枠を取り消します。
	Forgive(ctx context.Context, key, member string) error
}

// Result は1回の予約の結果を表します。
type Result struct {
	Allowed    bool
	RetryAfter time.Duration

	member string
}

// Limiter は Store を使ってログイン試行回数を制限します。
type Limiter struct {
	store Store
}

// New は Limiter を作成します。
func New(store Store) *Limiter {
	return &Limiter{store: store}
}

// Reserve は key（送信元アドレス）に対して試行枠を1つ予約します。
// 予約はリクエスト単位で一意なメンバーIDを持ち、成功時に Forgive で返却できます。
func (l *Limiter) Reserve(ctx context.Context, key string) (Result, error) {
	member := uuid.NewString()
	allowed, retryAfter, err := l.store.Reserve(ctx, key, member)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Allowed:    allowed,
		RetryAfter: retryAfter,
		member:     member,
	}, nil
}

// Forgive は成功したログインの予約枠を取り消します。
// 成功したログインは試行回数に数えないための仕組みです。
func (l *Limiter) Forgive(ctx context.Context, key string, res Result) error {
	if !res.Allowed || res.member == "" {
		return nil
	}
	return l.store.Forgive(ctx, key, res.member)
}
