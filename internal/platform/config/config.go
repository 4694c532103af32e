// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 設定用環境変数のキー名です。
const (
	EnvKeyAppName       = "APP_NAME"
	EnvKeyAppHost       = "APP_HOST"
	EnvKeyAppPort       = "APP_PORT"
	EnvKeyJWTSecret     = "JWT_SECRET"
	EnvKeyJWTAlgorithm  = "JWT_ALGORITHM"
	EnvKeyTokenTTL      = "ACCESS_TOKEN_EXPIRE_MINUTES"
	EnvKeyDBHost        = "DB_HOST"
	EnvKeyDBPort        = "DB_PORT"
	EnvKeyDBUser        = "DB_USER"
	EnvKeyDBPassword    = "DB_PASSWORD"
	EnvKeyDBName        = "DB_NAME"
	EnvKeyDBSchema      = "DB_SCHEMA"
	EnvKeyRedisHost     = "REDIS_HOST"
	EnvKeyRedisPort     = "REDIS_PORT"
	EnvKeyRedisPassword = "REDIS_PASSWORD"
	EnvKeyCORSOrigins   = "CORS_ORIGINS"
)

// Config は起動時に一度だけ構築されるアプリケーション設定です。
// 構築後は読み取り専用として各コンポーネントへ明示的に渡されます。
type Config struct {
	AppName string
	AppHost string
	AppPort int

	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSchema   string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	// CORSOrigins is "*" or a comma-separated list of allowed origins.
	CORSOrigins string
}

// Load は環境変数からConfigを構築します。未設定の値にはデフォルトを適用します。
func Load() *Config {
	return &Config{
		AppName: getenv(EnvKeyAppName, "Calendar API"),
		AppHost: getenv(EnvKeyAppHost, "0.0.0.0"),
		AppPort: getenvInt(EnvKeyAppPort, 8000),

		JWTSecret:      os.Getenv(EnvKeyJWTSecret),
		JWTAlgorithm:   getenv(EnvKeyJWTAlgorithm, "HS256"),
		AccessTokenTTL: time.Duration(getenvInt(EnvKeyTokenTTL, 60)) * time.Minute,

		DBHost:     getenv(EnvKeyDBHost, "localhost"),
		DBPort:     getenvInt(EnvKeyDBPort, 5432),
		DBUser:     getenv(EnvKeyDBUser, "calendar_user"),
		DBPassword: getenv(EnvKeyDBPassword, "calendar_password"),
		DBName:     getenv(EnvKeyDBName, "calendar_db"),
		DBSchema:   getenv(EnvKeyDBSchema, "calendar"),

		RedisHost:     os.Getenv(EnvKeyRedisHost),
		RedisPort:     getenv(EnvKeyRedisPort, "6379"),
		RedisPassword: os.Getenv(EnvKeyRedisPassword),

		CORSOrigins: getenv(EnvKeyCORSOrigins, "*"),
	}
}

// Addr はHTTPサーバーの待ち受けアドレスを返します。
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.AppHost, c.AppPort)
}

// DSN はPostgreSQL接続文字列を返します。
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// RedisAddr はRedisの接続先アドレスを返します。
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// CORSOriginList はCORS設定を許可オリジンのリストに展開します。
// "*" または空の場合は ["*"] を返します。
func (c *Config) CORSOriginList() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
