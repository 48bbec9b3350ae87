// Package adapters はuploadsフィーチャーのストレージ実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kalakraft_backend/internal/feature/uploads/usecase"
)

// DefaultUploadDir はアップロード先のデフォルトディレクトリです。
// サーバーの作業ディレクトリ配下の公開ディレクトリを指します。
const DefaultUploadDir = "public/uploads"

// localStore はFileStoreインターフェースのローカルディスク実装です。
type localStore struct {
	dir string
}

// localStoreがFileStoreを実装していることをコンパイル時に検証します。
var _ usecase.FileStore = (*localStore)(nil)

// NewLocalStore は指定ディレクトリ配下に書き込むlocalStoreを生成します。
// dirが空の場合はDefaultUploadDirを使用します。
func NewLocalStore(dir string) *localStore {
	if dir == "" {
		dir = DefaultUploadDir
	}
	return &localStore{dir: dir}
}

// Write はnameでファイルを作成し、rの全内容を書き込みます。
// nameはusecase側で生成されたランダム名のみを想定します。
// 途中で失敗した場合、書きかけのファイルはベストエフォートで削除されます。
func (s *localStore) Write(ctx context.Context, name string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}
