// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"calendar_backend/internal/feature/auth/domain/entity"
	"calendar_backend/internal/feature/auth/transport/http/dto"
	"calendar_backend/internal/feature/auth/usecase"
	jwtmw "calendar_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、作成されたユーザーを返します。
	Register(ctx context.Context, email, firstName, lastName, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にアクセストークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// ChangePassword は現在のパスワードを検証した上で新しいパスワードを保存します。
	ChangePassword(ctx context.Context, user *entity.User, oldPassword, newPassword string) error
	// UpdateProfile は指定されたフィールドのみを上書きします。
	UpdateProfile(ctx context.Context, user *entity.User, update usecase.ProfileUpdate) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は400を返却
// - 成功時は201と作成されたユーザーを返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register rejected", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("user registered", "email", user.Email, "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時は原因を区別せず400を返します（ユーザー列挙攻撃の防止）。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect email or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.NewTokenRes(token))
}

// Me は現在の認証済みユーザーのプロフィールを返します。
func (h *AuthHandler) Me(c *gin.Context) {
	user := jwtmw.CurrentUserFrom(c)
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// UpdateMe は現在のユーザーのプロフィールを部分更新します。
// ペイロードに存在するフィールドのみが上書きされます。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.ProfileUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("profile update validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := jwtmw.CurrentUserFrom(c)
	updated, err := h.auth.UpdateProfile(c.Request.Context(), user, usecase.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		slog.Error("profile update failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserRes(updated))
}

// ChangePassword は現在のユーザーのパスワードを変更します。
// 旧パスワードが一致しない場合は400、成功時は204を返します。
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.PasswordChangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("password change validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := jwtmw.CurrentUserFrom(c)
	if err := h.auth.ChangePassword(c.Request.Context(), user, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("password change rejected", "user_id", user.ID)
			c.JSON(http.StatusBadRequest, gin.H{"error": "old password is incorrect"})
			return
		}
		slog.Error("password change failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	c.Status(http.StatusNoContent)
}
