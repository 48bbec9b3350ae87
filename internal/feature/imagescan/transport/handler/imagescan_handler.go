// Package handler はimagescanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kalakraft_backend/internal/api"
	"kalakraft_backend/internal/feature/imagescan/domain/entity"
)

// ImagescanUsecase は商品画像スキャン・説明文生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ImagescanUsecase interface {
	ScanImage(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error)
	DescribeProduct(ctx context.Context, productName string) (*entity.ListingDescription, error)
}

// ImagescanHandler は商品画像スキャンのHTTPリクエストを処理します。
type ImagescanHandler struct {
	uc ImagescanUsecase
}

// NewImagescanHandler はImagescanHandlerの新しいインスタンスを生成します。
func NewImagescanHandler(uc ImagescanUsecase) *ImagescanHandler {
	return &ImagescanHandler{uc: uc}
}

// Scan は商品画像をアップロードしてサードパーティのロゴを検出します。
//
// エンドポイント: POST /api/admin/images/scan
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *ImagescanHandler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("image scan rejected: no image provided", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open scan image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close scan image", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read scan image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	logos, err := h.uc.ScanImage(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("image scan failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "image scan failed"})
		return
	}

	out := make([]api.DetectedLogoResponse, 0, len(logos))
	for _, l := range logos {
		out = append(out, api.DetectedLogoResponse{
			Name:       l.Name,
			Confidence: l.Confidence,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Describe はリスティング用の商品説明文ドラフトを生成します。
//
// エンドポイント: POST /api/admin/images/describe
// Content-Type: application/json
func (h *ImagescanHandler) Describe(c *gin.Context) {
	var req api.DescribeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("describe request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "product name is required"})
		return
	}

	desc, err := h.uc.DescribeProduct(c.Request.Context(), req.ProductName)
	if err != nil {
		slog.Error("description generation failed", "error", err, "product", req.ProductName)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "description generation failed"})
		return
	}

	c.JSON(http.StatusOK, api.DescribeProductResponse{
		ProductName: desc.ProductName,
		Description: desc.Description,
	})
}
