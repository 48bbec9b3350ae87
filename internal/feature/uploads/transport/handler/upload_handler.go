// Package handler はuploadsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kalakraft_backend/internal/api"
	"kalakraft_backend/internal/feature/uploads/usecase"
)

// UploadUsecase はファイルアップロードのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type UploadUsecase interface {
	Store(ctx context.Context, originalName string, size int64, r io.Reader) (string, error)
}

// UploadHandler はファイルアップロードのHTTPリクエストを処理します。
type UploadHandler struct {
	uc UploadUsecase
}

// NewUploadHandler はUploadHandlerの新しいインスタンスを生成します。
func NewUploadHandler(uc UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Upload はmultipartフォームのfileフィールドを保存し、公開URLを返します。
//
// エンドポイント: POST /api/uploads
// Content-Type: multipart/form-data
// フィールド: file
//
// fileフィールドが存在しない場合や、ファイルではない通常のフォーム値が
// 送られた場合は400を返します。書き込み失敗は500です。
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		slog.Warn("upload rejected: no file provided", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no file provided"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read upload"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	url, err := h.uc.Store(c.Request.Context(), file.Filename, file.Size, f)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyFile) || errors.Is(err, usecase.ErrFileTooLarge) {
			slog.Warn("upload rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to store upload", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to store upload"})
		return
	}

	slog.Info("upload stored", "url", url, "size", file.Size)
	c.JSON(http.StatusOK, api.UploadResponse{URL: url})
}
