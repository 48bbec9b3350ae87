// Package usecase はimagescanフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"kalakraft_backend/internal/feature/imagescan/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// DescriptionPromptTemplate は商品説明文生成のプロンプトテンプレートです。
	DescriptionPromptTemplate = "Write a warm, two-paragraph product listing description for a handcrafted item called %q sold on an artisan marketplace. Do not invent materials or dimensions."
	// MaxProductNameLength は商品名の最大文字数（rune数）です。
	MaxProductNameLength = 100
)

// validProductName は商品名に許可される文字パターンです（文字・数字・スペース・記号の一部）。
var validProductName = regexp.MustCompile(`^[\p{L}\p{N}\s'\-\.&,]+$`)

// LogoDetector は画像からロゴを検出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LogoDetector interface {
	// DetectLogos は画像バイト列からロゴを検出し、検出結果を返します。
	DetectLogos(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error)
}

// DescriptionWriter は商品説明文を生成するリポジトリインターフェースです。
type DescriptionWriter interface {
	// Write はプロンプトから説明文を生成します。
	Write(ctx context.Context, prompt string) (string, error)
}

// imagescanUsecase は商品画像スキャン・説明文生成のビジネスロジックを提供します。
type imagescanUsecase struct {
	logoDetector LogoDetector
	writer       DescriptionWriter
}

// NewImagescanUsecase はimagescanUsecaseの新しいインスタンスを生成します。
func NewImagescanUsecase(ld LogoDetector, w DescriptionWriter) *imagescanUsecase {
	return &imagescanUsecase{logoDetector: ld, writer: w}
}

// ScanImage は商品画像からサードパーティのロゴを検出します。
func (u *imagescanUsecase) ScanImage(ctx context.Context, imageData []byte) ([]entity.DetectedLogo, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}
	return u.logoDetector.DetectLogos(ctx, imageData)
}

// DescribeProduct は商品名からリスティング用の説明文を生成します。
func (u *imagescanUsecase) DescribeProduct(ctx context.Context, productName string) (*entity.ListingDescription, error) {
	if productName == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if utf8.RuneCountInString(productName) > MaxProductNameLength {
		return nil, fmt.Errorf("product name exceeds maximum length of %d characters", MaxProductNameLength)
	}
	if !validProductName.MatchString(productName) {
		return nil, fmt.Errorf("product name contains invalid characters")
	}
	prompt := fmt.Sprintf(DescriptionPromptTemplate, productName)
	description, err := u.writer.Write(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("description writer failed for %q: %w", productName, err)
	}
	return &entity.ListingDescription{
		ProductName: productName,
		Description: description,
	}, nil
}
