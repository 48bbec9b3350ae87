// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kalakraft_backend/internal/api"
	"kalakraft_backend/internal/feature/auth/domain"
	"kalakraft_backend/internal/feature/auth/domain/entity"
	"kalakraft_backend/internal/feature/auth/usecase"
	jwtmw "kalakraft_backend/internal/platform/jwt"
	"kalakraft_backend/internal/platform/session"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にユーザーとセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
}

// ResetUsecase はOTPによるパスワード変更のユースケースを定義します。
type ResetUsecase interface {
	// Request はワンタイムパスワードを発行してメール送信します。
	Request(ctx context.Context, userID uint) error
	// Confirm はワンタイムパスワードを検証し、パスワードを更新します。
	Confirm(ctx context.Context, userID uint, code, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth  AuthUsecase
	reset ResetUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からユースケースを注入します。
func NewAuthHandler(auth AuthUsecase, reset ResetUsecase) *AuthHandler {
	return &AuthHandler{auth: auth, reset: reset}
}

// Login はログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginRequestにバインド（不足フィールドは400）
// - 認証失敗時は401（アカウント有無を推測させない統一メッセージ）
// - 成功時はセッションクッキーを設定し、ハッシュを除いた公開フィールドを返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email and password are required"})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、未登録と誤パスワードを区別しない
			slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	session.Issue(c, token)

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
}

// Logout はログアウトAPIエンドポイントを処理します。
// 過去に使用したすべてのクッキー名を失効させます。セッションが存在しない場合も成功します。
func (h *AuthHandler) Logout(c *gin.Context) {
	session.Revoke(c)
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}

// RequestPasswordChange はパスワード変更用ワンタイムパスワードの発行を処理します。
// 認証済みユーザーのメールアドレス宛にコードを送信します。
func (h *AuthHandler) RequestPasswordChange(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	if err := h.reset.Request(c.Request.Context(), userID); err != nil {
		slog.Error("otp request failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to send one-time password"})
		return
	}

	slog.Info("otp issued", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "one-time password sent"})
}

// ConfirmPasswordChange はワンタイムパスワードによるパスワード更新を処理します。
// - newPasswordとconfirmPasswordの一致はハンドラーが検証（ユースケースはコードと期限のみ検証）
// - 期限切れ・コード不一致・エントリなしは401
func (h *AuthHandler) ConfirmPasswordChange(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req api.ConfirmPasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("password change validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "passwords do not match"})
		return
	}

	if err := h.reset.Confirm(c.Request.Context(), userID, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrOTPExpired):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "one-time password has expired"})
		case errors.Is(err, usecase.ErrOTPMismatch), errors.Is(err, usecase.ErrOTPNotFound):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid one-time password"})
		default:
			slog.Error("password change failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
