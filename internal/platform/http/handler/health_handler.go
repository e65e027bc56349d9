// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout は依存サービス1件あたりの疎通確認の上限時間です。
const readinessTimeout = 2 * time.Second

// Check はレディネス確認の対象となる依存サービスです（DB、Redisなど）。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Health は /healthz（ライブネス）を処理します。プロセスが応答できれば常に成功します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Readiness は /readyz を処理するハンドラーを返します。
// すべての依存サービスに疎通できれば200、1件でも失敗すれば503と失敗内容を返します。
func Readiness(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		results := make(map[string]string, len(checks))
		ready := true
		for _, chk := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			err := chk.Ping(ctx)
			cancel()
			if err != nil {
				ready = false
				results[chk.Name] = err.Error()
				continue
			}
			results[chk.Name] = "ok"
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": results})
	}
}
