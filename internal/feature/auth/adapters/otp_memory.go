package adapters

import (
	"context"
	"sync"

	"kalakraft_backend/internal/feature/auth/domain/entity"
	"kalakraft_backend/internal/feature/auth/usecase"
)

// otpMemory はOTPRepositoryインターフェースのインメモリ実装です。
// プロセスローカルな状態のため、単一インスタンスのデプロイ専用です。
// 水平スケール構成では platform/otp のRedis実装を使用してください。
type otpMemory struct {
	mu      sync.RWMutex
	entries map[uint]entity.OTPEntry
}

// otpMemoryがOTPRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.OTPRepository = (*otpMemory)(nil)

// NewOTPMemory はotpMemoryの新しいインスタンスを生成します。
func NewOTPMemory() *otpMemory {
	return &otpMemory{entries: make(map[uint]entity.OTPEntry)}
}

// Save はエントリを保存します。同一ユーザーの既存エントリは上書きされます。
func (r *otpMemory) Save(ctx context.Context, entry *entity.OTPEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.UserID] = *entry
	return nil
}

// Find は指定ユーザーのエントリを取得します。
// 存在しない場合、usecase.ErrOTPNotFoundを返します。
// 期限判定はusecase側の責務のため、ここでは期限切れエントリもそのまま返します。
func (r *otpMemory) Find(ctx context.Context, userID uint) (*entity.OTPEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[userID]
	if !ok {
		return nil, usecase.ErrOTPNotFound
	}
	return &entry, nil
}

// Delete は指定ユーザーのエントリを削除します。存在しない場合も成功します。
func (r *otpMemory) Delete(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
	return nil
}
