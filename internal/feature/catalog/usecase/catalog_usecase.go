// Package usecase implements the business logic for catalog operations.
package usecase

import (
	"context"
	"errors"

	"kalakraft_backend/internal/feature/catalog/domain/entity"
)

// ErrProductNotFound is returned when no product matches the given criteria.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository abstracts the persistence layer for catalog products.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProductRepository interface {
	ListActive(ctx context.Context) ([]entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
}

// CatalogUsecase provides business logic for catalog operations.
type CatalogUsecase struct {
	repo ProductRepository
}

// NewCatalogUsecase creates a new CatalogUsecase with the given repository.
func NewCatalogUsecase(r ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: r}
}

// ListActiveProducts returns all visible products in catalog order.
func (u *CatalogUsecase) ListActiveProducts(ctx context.Context) ([]entity.Product, error) {
	return u.repo.ListActive(ctx)
}

// GetProductBySlug returns a single product by its storefront slug.
func (u *CatalogUsecase) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return u.repo.FindBySlug(ctx, slug)
}

// CreateProduct persists a new listing.
func (u *CatalogUsecase) CreateProduct(ctx context.Context, p *entity.Product) error {
	return u.repo.Create(ctx, p)
}

// UpdateProduct overwrites an existing listing's fields.
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, p *entity.Product) error {
	if _, err := u.repo.FindByID(ctx, p.ID); err != nil {
		return err
	}
	return u.repo.Update(ctx, p)
}
