// Package handler はmediaフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"kalakraft_backend/internal/api"
	"kalakraft_backend/internal/feature/media/usecase"
)

// DefaultVideoPath はストアフロントの紹介動画のデフォルトパスです。
const DefaultVideoPath = "public/video/showreel.mp4"

// contentType は配信する動画のMIMEタイプです。
const contentType = "video/mp4"

// VideoHandler は単一の動画アセットをRangeリクエスト対応で配信します。
type VideoHandler struct {
	path string
}

// NewVideoHandler は指定パスの動画を配信するVideoHandlerを生成します。
// pathが空の場合はDefaultVideoPathを使用します。
func NewVideoHandler(path string) *VideoHandler {
	if path == "" {
		path = DefaultVideoPath
	}
	return &VideoHandler{path: path}
}

// Stream は動画をストリーミング配信します。
//
// エンドポイント: GET /api/video
//
//   - Rangeヘッダーなし: 200で全体を配信
//   - 有効なRange: 206で指定ウィンドウのみ配信（シーク対応）
//   - 不正なRange: 416 Range Not Satisfiable
//   - アセットが存在しない: 404
//
// エラーレスポンスにファイルシステムのパスは決して含めません。
func (h *VideoHandler) Stream(c *gin.Context) {
	info, err := os.Stat(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "video not found"})
			return
		}
		slog.Error("failed to stat video asset", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	size := info.Size()

	rng, kind := usecase.ParseRange(c.GetHeader("Range"), size)
	if kind == usecase.RangeInvalid {
		c.Header("Content-Range", fmt.Sprintf("bytes */%d", size))
		c.JSON(http.StatusRequestedRangeNotSatisfiable, api.ErrorResponse{Error: "requested range not satisfiable"})
		return
	}

	f, err := os.Open(h.path)
	if err != nil {
		slog.Error("failed to open video asset", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close video asset", "error", err)
		}
	}()

	c.Header("Accept-Ranges", "bytes")

	if kind == usecase.RangeNone {
		c.DataFromReader(http.StatusOK, size, contentType, f, nil)
		return
	}

	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		slog.Error("failed to seek video asset", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	extraHeaders := map[string]string{
		"Content-Range": fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, size),
	}
	c.DataFromReader(http.StatusPartialContent, rng.Length(), contentType,
		io.LimitReader(f, rng.Length()), extraHeaders)
}
