package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "calendar_backend/internal/feature/auth/transport/handler"
	taskhandler "calendar_backend/internal/feature/tasks/transport/handler"
	"calendar_backend/internal/platform/config"
	"calendar_backend/internal/platform/http/handler"
	jwtmw "calendar_backend/internal/platform/jwt"
)

// NewRouter はルートテーブルとミドルウェアを組み立てます。
// 認証不要ルート: 登録・ログイン・ヘルスチェック・ステータスフィード。
// それ以外の /api 配下はすべてbearerトークン必須です。
func NewRouter(
	cfg *config.Config,
	verifier jwtmw.Verifier,
	users jwtmw.UserResolver,
	authHandler *authhandler.AuthHandler,
	taskHandler *taskhandler.TaskHandler,
	statusHandler *handler.StatusHandler,
) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(cfg))

	// 認証不要
	// 導通確認用
	r.GET("/api/health", handler.Health)
	// ステータスフィード（websocket）
	r.GET("/ws/status", statusHandler.Status)
	// 新規ユーザー登録
	r.POST("/api/auth/register", authHandler.Register)
	// ログイン（JWT 発行）
	r.POST("/api/auth/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/api")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに有効なbearerトークンが必要になる
	auth.Use(jwtmw.AuthRequired(verifier, users))
	{
		auth.GET("/auth/me", authHandler.Me)
		auth.PUT("/auth/me", authHandler.UpdateMe)
		auth.POST("/auth/change-password", authHandler.ChangePassword)

		auth.POST("/tasks", taskHandler.Create)
		auth.GET("/tasks", taskHandler.List)
		auth.GET("/tasks/:id", taskHandler.Get)
		auth.PUT("/tasks/:id", taskHandler.Update)
		auth.DELETE("/tasks/:id", taskHandler.Delete)
	}

	return r
}

// corsMiddleware は設定されたオリジンリストからCORSミドルウェアを構築します。
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}

	origins := cfg.CORSOriginList()
	if len(origins) == 1 && origins[0] == "*" {
		// ワイルドカード時はcredentialsを許可できない（gin-contrib/corsの制約）
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}

	return cors.New(corsCfg)
}
