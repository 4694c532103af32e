package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"calendar_backend/internal/platform/config"

	userentity "calendar_backend/internal/feature/auth/domain/entity"
	taskentity "calendar_backend/internal/feature/tasks/domain/entity"
)

// OpenDB はPostgreSQLへ接続し、スキーマとテーブルを冪等に作成します。
// DB起動待ちのため最大60秒間リトライします。
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := cfg.DSN()

	gormCfg := &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			// 全テーブルを設定されたスキーマ名前空間の下に置く
			TablePrefix: cfg.DBSchema + ".",
		},
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", cfg.DBSchema)).Error; err != nil {
		log.Fatalf("failed to create schema %q: %v", cfg.DBSchema, err)
	}

	// マイグレーション（User, Task）
	if err := db.AutoMigrate(
		&userentity.User{},
		&taskentity.Task{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
