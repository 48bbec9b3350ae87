// Package usecase はuploadsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxUploadSize はアップロードの最大サイズ（20MB）です。
	MaxUploadSize = 20 * 1024 * 1024

	// PublicMount は生成されたファイルが公開されるURLパスです。
	PublicMount = "/uploads"
)

// validExt は許可される拡張子のパターンです。外れた拡張子は破棄されます。
var validExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// FileStore はアップロードされたバイト列の保存先を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FileStore interface {
	// Write はnameでファイルを作成し、rの全内容を書き込みます。
	// 書き込み失敗時、部分的なファイルはベストエフォートで除去されます。
	Write(ctx context.Context, name string, r io.Reader) error
}

// uploadUsecase はファイルアップロードのビジネスロジックを提供します。
type uploadUsecase struct {
	store FileStore
}

// NewUploadUsecase はuploadUsecaseの新しいインスタンスを生成します。
func NewUploadUsecase(store FileStore) *uploadUsecase {
	return &uploadUsecase{store: store}
}

// NewFilename はクライアント提供のファイル名から衝突しない保存名を導出します。
// ベース名は常にランダムIDに置き換えられ、パストラバーサルと衝突を防ぎます。
// 拡張子のみ引き継がれ、許可パターンに合わないものは捨てられます。
func NewFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !validExt.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

// Store はファイル内容を保存し、公開URLパスを返します。
func (u *uploadUsecase) Store(ctx context.Context, originalName string, size int64, r io.Reader) (string, error) {
	if size <= 0 {
		return "", ErrEmptyFile
	}
	if size > MaxUploadSize {
		return "", fmt.Errorf("%w: %d bytes exceeds maximum of %d", ErrFileTooLarge, size, MaxUploadSize)
	}

	name := NewFilename(originalName)
	if err := u.store.Write(ctx, name, r); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return path.Join(PublicMount, name), nil
}
