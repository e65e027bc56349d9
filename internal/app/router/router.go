// Package router builds the gin engine and mounts every route.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	charthandler "astrology_backend/internal/feature/chart/transport/handler"
	synastryhandler "astrology_backend/internal/feature/synastry/transport/handler"
	"astrology_backend/internal/platform/config"
	"astrology_backend/internal/platform/http/handler"
	jwtmw "astrology_backend/internal/platform/jwt"
	"astrology_backend/internal/platform/metrics"
)

// Options carries the configuration sections the router needs.
type Options struct {
	Server config.ServerConfig
	JWT    config.JWTConfig
	Checks []handler.Check
}

func NewRouter(opts Options, chart *charthandler.ChartHandler, synastry *synastryhandler.SynastryHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())

	// スマホアプリ以外（ブラウザ）から呼ぶ場合のみ CORS を有効化
	if len(opts.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.Server.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if opts.Server.RequestTimeout > 0 {
		r.Use(requestTimeout(opts.Server.RequestTimeout))
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", handler.Readiness(opts.Checks...))
	r.GET("/metrics", metrics.Handler())

	// 参照系
	r.GET("/charts/:id", chart.GetChart)
	r.POST("/charts/solar-return", chart.SolarReturn)
	r.POST("/charts/lunar-return", chart.LunarReturn)
	r.POST("/synastry", synastry.Compare)

	// 保存・外部API呼び出しを伴うルート
	// jwt.secret が設定されている場合のみ JWT を必須にする
	write := r.Group("/")
	if opts.JWT.Secret != "" {
		write.Use(jwtmw.AuthRequired(opts.JWT))
	}
	{
		write.POST("/charts/natal", chart.CreateNatal)
		write.POST("/synastry/narrative", synastry.Narrative)
	}

	return r
}

// requestTimeout bounds the request context so ephemeris calls give up with
// context.DeadlineExceeded, which the handlers map to 504.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
