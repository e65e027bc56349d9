// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter はトークンバケットで呼び出し頻度を制限します。
// 429応答を受けた場合は RecordRateLimited で一定時間すべての呼び出しを止めます。
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter は interval あたり limit 回までの呼び出しを許可するRateLimiterを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
	}
}

// Wait はレートリミットの上限に達している場合、呼び出しが許可されるまで待機します。
// コンテキストがキャンセルされた場合はそのエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	retryAt := rl.retryAt
	rl.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		slog.Warn("rate limited by upstream, backing off", "wait", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return rl.limiter.Wait(ctx)
}

// RecordRateLimited は上流から429を受けたことを記録し、retryAfter の間呼び出しを止めます。
// retryAfter が0以下の場合は1分待機します。
func (rl *RateLimiter) RecordRateLimited(retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = time.Minute
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.retryAt = time.Now().Add(retryAfter)
}
