package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"calendar_backend/internal/app/di"
	"calendar_backend/internal/app/router"
	authadapters "calendar_backend/internal/feature/auth/adapters"
	authhandler "calendar_backend/internal/feature/auth/transport/handler"
	authusecase "calendar_backend/internal/feature/auth/usecase"
	taskhandler "calendar_backend/internal/feature/tasks/transport/handler"
	taskusecase "calendar_backend/internal/feature/tasks/usecase"
	"calendar_backend/internal/platform/config"
	platformdb "calendar_backend/internal/platform/db"
	platformhandler "calendar_backend/internal/platform/http/handler"
	jwtmw "calendar_backend/internal/platform/jwt"
	platformredis "calendar_backend/internal/platform/redis"
)

func main() {
	// 設定（起動時に一度だけ読み込み、以降は参照渡し）
	cfg := config.Load()

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db（スキーマとテーブルを冪等に作成）
	db := platformdb.OpenDB(cfg)

	// Redis（任意: 利用不可ならキャッシュなしで稼働）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Token generator/verifier
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	taskRepo := di.NewTaskRepository(rdb, db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)
	statusH := platformhandler.NewStatusHandler()

	// ルータ生成
	r := router.NewRouter(cfg, tokens, authUC, authH, taskH, statusH)

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
