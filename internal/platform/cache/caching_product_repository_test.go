package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"kalakraft_backend/internal/feature/catalog/domain/entity"
	"kalakraft_backend/internal/feature/catalog/usecase"
)

// mockProductRepository はテスト用のProductRepositoryモック実装です。
type mockProductRepository struct {
	listActiveFn func(ctx context.Context) ([]entity.Product, error)
	findBySlugFn func(ctx context.Context, slug string) (*entity.Product, error)
	findByIDFn   func(ctx context.Context, id uint) (*entity.Product, error)
	createFn     func(ctx context.Context, p *entity.Product) error
	updateFn     func(ctx context.Context, p *entity.Product) error
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockProductRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	if m.findBySlugFn != nil {
		return m.findBySlugFn(ctx, slug)
	}
	return nil, usecase.ErrProductNotFound
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, usecase.ErrProductNotFound
}

func (m *mockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

// TestNewCachingProductRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingProductRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "products",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "products",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingProductRepository(nil, tt.ttl, &mockProductRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingProductRepository_ListActive_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingProductRepository_ListActive_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Product{{ID: 1, Slug: "brass-diya", IsActive: true}}

	inner := &mockProductRepository{
		listActiveFn: func(ctx context.Context) ([]entity.Product, error) {
			return expected, nil
		},
	}

	repo := NewCachingProductRepository(nil, 5*time.Minute, inner, "products")

	products, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected 1 product, got %d", len(products))
	}
}

// TestCachingProductRepository_ListActive_CacheHit はキャッシュヒット時にRedisからデータを返し、内部リポジトリを呼ばないことを検証します。
func TestCachingProductRepository_ListActive_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Product{{ID: 1, Slug: "brass-diya", IsActive: true}}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("products:active").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockProductRepository{
		listActiveFn: func(ctx context.Context) ([]entity.Product, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	products, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(products) != 1 || products[0].Slug != "brass-diya" {
		t.Errorf("unexpected products: %+v", products)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_ListActive_CacheMiss はキャッシュミス時にDBからデータを取得し、キャッシュに保存することを検証します。
func TestCachingProductRepository_ListActive_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Product{{ID: 1, Slug: "brass-diya", IsActive: true}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("products:active").RedisNil()
	mock.ExpectSet("products:active", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		listActiveFn: func(ctx context.Context) ([]entity.Product, error) {
			return expected, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	products, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected 1 product, got %d", len(products))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_ListActive_CorruptedCache は破損したキャッシュを検出・削除し、DBにフォールバックすることを検証します。
func TestCachingProductRepository_ListActive_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Product{{ID: 1, Slug: "brass-diya", IsActive: true}}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("products:active").SetVal("invalid json")
	mock.ExpectDel("products:active").SetVal(1)
	mock.ExpectSet("products:active", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		listActiveFn: func(ctx context.Context) ([]entity.Product, error) {
			return expected, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	products, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected 1 product, got %d", len(products))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindBySlug_CacheMiss はスラッグ検索のキャッシュミス時にDBへフォールバックすることを検証します。
func TestCachingProductRepository_FindBySlug_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := &entity.Product{ID: 1, Slug: "brass-diya", IsActive: true}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("products:slug:brass-diya").RedisNil()
	mock.ExpectSet("products:slug:brass-diya", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockProductRepository{
		findBySlugFn: func(ctx context.Context, slug string) (*entity.Product, error) {
			return expected, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	product, err := repo.FindBySlug(context.Background(), "brass-diya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Slug != "brass-diya" {
		t.Errorf("unexpected product: %+v", product)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindBySlug_NotFound は未登録スラッグのエラーが伝播され、キャッシュされないことを検証します。
func TestCachingProductRepository_FindBySlug_NotFound(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("products:slug:no-such-slug").RedisNil()

	repo := NewCachingProductRepository(rdb, 5*time.Minute, &mockProductRepository{}, "products")
	_, err := repo.FindBySlug(context.Background(), "no-such-slug")

	if !errors.Is(err, usecase.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_FindByID_BypassesCache はID検索が常に内部リポジトリへ直行することを検証します。
func TestCachingProductRepository_FindByID_BypassesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockProductRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Product, error) {
			return &entity.Product{ID: id, Slug: "brass-diya"}, nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	product, err := repo.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != 1 {
		t.Errorf("unexpected product: %+v", product)
	}
	// No Redis expectations were registered: any cache access would fail
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_Create_CacheInvalidation はCreate後に一覧とスラッグのキャッシュが無効化されることを検証します。
func TestCachingProductRepository_Create_CacheInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("products:active", "products:slug:brass-diya").SetVal(2)

	inner := &mockProductRepository{
		createFn: func(ctx context.Context, p *entity.Product) error {
			return nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	err := repo.Create(context.Background(), &entity.Product{Slug: "brass-diya"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_Update_CacheInvalidation はUpdate後に一覧とスラッグのキャッシュが無効化されることを検証します。
func TestCachingProductRepository_Update_CacheInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("products:active", "products:slug:brass-diya").SetVal(2)

	inner := &mockProductRepository{
		updateFn: func(ctx context.Context, p *entity.Product) error {
			return nil
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	err := repo.Update(context.Background(), &entity.Product{ID: 1, Slug: "brass-diya"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingProductRepository_Create_InnerError は内部リポジトリのCreateエラー時にキャッシュ無効化が行われないことを検証します。
func TestCachingProductRepository_Create_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("duplicate slug")
	inner := &mockProductRepository{
		createFn: func(ctx context.Context, p *entity.Product) error {
			return expectedErr
		},
	}

	repo := NewCachingProductRepository(rdb, 5*time.Minute, inner, "products")
	err := repo.Create(context.Background(), &entity.Product{Slug: "brass-diya"})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	// No Del expectation: invalidation must not run on a failed write
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestSafe はsafe関数がRedisキーで問題となる文字を正しくエスケープすることを検証します。
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"brass-diya", "brass-diya"},
		{"clay vase", "clay_vase"},
		{"key:value", "key_value"},
		{"a b:c", "a_b_c"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
