// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kalakraft_backend/internal/feature/catalog/domain/entity"
	"kalakraft_backend/internal/feature/catalog/usecase"
)

// productGorm はProductRepositoryインターフェースのGORM実装です。
type productGorm struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductRepository は指定されたDB接続でproductGormリポジトリの新しいインスタンスを生成します。
func NewProductRepository(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// ListActive はsort_key順にすべての公開中商品を返します。
func (r *productGorm) ListActive(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySlug はスラッグで商品を取得します。
// 商品が存在しない場合、usecase.ErrProductNotFoundを返します。
func (r *productGorm) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByID はIDで商品を取得します。
// 商品が存在しない場合、usecase.ErrProductNotFoundを返します。
func (r *productGorm) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create は商品をデータベースに追加します。
func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update は商品の全フィールドを保存します。
func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}
