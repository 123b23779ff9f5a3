package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "login_attempts:"

// RedisStore は試行枠を Redis のソート済みセットに保持する Store 実装です。
// 複数インスタンスでカウンタを共有したい場合に利用します。
type RedisStore struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewRedisStore は RedisStore を作成します。
func NewRedisStore(rdb *redis.Client, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

// Reserve はウィンドウ外の試行を破棄し、メンバーを追加してから枚数を確認します。
// 追加してから数えるため、同時バーストでも上限を超えた予約はすべて検出できます。
func (s *RedisStore) Reserve(ctx context.Context, key, member string) (bool, time.Duration, error) {
	now := time.Now()
	redisKey := attemptKey(key)
	cutoff := strconv.FormatInt(now.Add(-s.window).UnixMilli(), 10)

	pipe := s.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: member,
	})
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if countCmd.Val() <= int64(s.limit) {
		return true, 0, nil
	}

	// 上限超過: 自分の予約を取り消し、最古の試行から待ち時間を算出する
	if err := s.rdb.ZRem(ctx, redisKey, member).Err(); err != nil {
		return false, 0, err
	}
	oldest, err := s.rdb.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
	if err != nil {
		return false, 0, err
	}
	retryAfter := s.window
	if len(oldest) > 0 {
		oldestAt := time.UnixMilli(int64(oldest[0].Score))
		retryAfter = oldestAt.Add(s.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
	}
	return false, retryAfter, nil
}

// Forgive は member で指定された予約枠を取り消します。
func (s *RedisStore) Forgive(ctx context.Context, key, member string) error {
	return s.rdb.ZRem(ctx, attemptKey(key), member).Err()
}

func attemptKey(key string) string {
	return attemptKeyPrefix + key
}
