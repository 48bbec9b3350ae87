// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kalakraft_backend/internal/api"
	"kalakraft_backend/internal/feature/catalog/domain/entity"
	"kalakraft_backend/internal/feature/catalog/usecase"
)

// CatalogUsecase は商品カタログに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CatalogUsecase interface {
	ListActiveProducts(ctx context.Context) ([]entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	CreateProduct(ctx context.Context, p *entity.Product) error
	UpdateProduct(ctx context.Context, p *entity.Product) error
}

// CatalogHandler は商品カタログのHTTPリクエストを処理します。
type CatalogHandler struct {
	uc CatalogUsecase
}

// NewCatalogHandler は新しい CatalogHandler を作成します。
func NewCatalogHandler(uc CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// toResponse は商品エンティティを公開DTOに変換します。
func toResponse(p *entity.Product) api.ProductResponse {
	return api.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}

// List は公開中商品の一覧を取得するAPIです。
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.uc.ListActiveProducts(c.Request.Context())
	if err != nil {
		slog.Error("failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	out := make([]api.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toResponse(&products[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はスラッグ指定で単一商品を取得するAPIです。
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.uc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "product not found"})
			return
		}
		slog.Error("failed to get product", "error", err, "slug", c.Param("slug"))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, toResponse(product))
}

// Create は商品を新規作成する管理者APIです。
func (h *CatalogHandler) Create(c *gin.Context) {
	var req api.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("product validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	product := fromRequest(&req)
	if err := h.uc.CreateProduct(c.Request.Context(), product); err != nil {
		slog.Error("failed to create product", "error", err, "slug", req.Slug)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create product"})
		return
	}

	slog.Info("product created", "id", product.ID, "slug", product.Slug)
	c.JSON(http.StatusCreated, toResponse(product))
}

// Update は商品を更新する管理者APIです。
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid product id"})
		return
	}

	var req api.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("product validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	product := fromRequest(&req)
	product.ID = uint(id)
	if err := h.uc.UpdateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "product not found"})
			return
		}
		slog.Error("failed to update product", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, toResponse(product))
}

// fromRequest はDTOから商品エンティティを組み立てます。
func fromRequest(req *api.ProductRequest) *entity.Product {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &entity.Product{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
		SortKey:     req.SortKey,
		IsActive:    active,
	}
}
