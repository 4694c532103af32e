package dto

import (
	"time"

	"calendar_backend/internal/feature/auth/domain/entity"
)

// UserRes はAPIレスポンス用のユーザー表現です。パスワードハッシュは含まれません。
type UserRes struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserRes はエンティティからUserResを構築します。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// TokenRes は/api/auth/loginの成功レスポンスを表します。
type TokenRes struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewTokenRes はbearerタイプのTokenResを構築します。
func NewTokenRes(token string) TokenRes {
	return TokenRes{AccessToken: token, TokenType: "bearer"}
}
