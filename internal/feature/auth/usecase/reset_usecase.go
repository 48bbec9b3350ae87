package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"kalakraft_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// OTPWindow はワンタイムパスワードの有効期間です。
	OTPWindow = 10 * time.Minute

	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// OTPRepository はワンタイムパスワードエントリの保存先を抽象化します。
// 単一プロセスではインメモリ実装、水平スケール構成ではRedis実装を注入します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type OTPRepository interface {
	// Save はエントリを保存します。同一ユーザーの既存エントリは上書きされます。
	Save(ctx context.Context, entry *entity.OTPEntry) error

	// Find は指定ユーザーの有効なエントリを取得します。
	// エントリが存在しない場合、ErrOTPNotFoundを返します。
	Find(ctx context.Context, userID uint) (*entity.OTPEntry, error)

	// Delete は指定ユーザーのエントリを削除します。存在しない場合も成功します。
	Delete(ctx context.Context, userID uint) error
}

// Mailer はワンタイムパスワードの送信手段を抽象化します。
type Mailer interface {
	Send(to, subject, body string) error
}

// resetUsecase はOTPによるパスワード変更フローを実装します。
type resetUsecase struct {
	users  UserRepository
	otps   OTPRepository
	mailer Mailer
}

// NewResetUsecase はresetUsecaseの新しいインスタンスを生成します。
func NewResetUsecase(users UserRepository, otps OTPRepository, mailer Mailer) *resetUsecase {
	return &resetUsecase{
		users:  users,
		otps:   otps,
		mailer: mailer,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Request は指定ユーザーのワンタイムパスワードを発行し、メールで送信します。
// 既存の未使用エントリは新しいエントリで上書きされます。
func (u *resetUsecase) Request(ctx context.Context, userID uint) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	code, err := GenerateOTP(OTPLength)
	if err != nil {
		return err
	}

	entry := &entity.OTPEntry{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(OTPWindow),
	}
	if err := u.otps.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	body := fmt.Sprintf("Your Kalakraft password change code is %s. It expires in %d minutes.",
		code, int(OTPWindow.Minutes()))
	if err := u.mailer.Send(user.Email, "Kalakraft password change code", body); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}

	return nil
}

// Confirm はワンタイムパスワードを検証し、成功時にパスワードを更新します。
// 検証順序は「存在 → 期限 → コード一致」の順で、期限切れはコードが正しくても失敗します。
// 成功したエントリは削除され、二度と使用できません（ワンタイム保証）。
func (u *resetUsecase) Confirm(ctx context.Context, userID uint, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	entry, err := u.otps.Find(ctx, userID)
	if err != nil {
		return err
	}

	if entry.IsExpired() {
		// 期限切れエントリは掃除してから失敗を返す
		_ = u.otps.Delete(ctx, userID)
		return ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		// 不一致時はエントリを残し、再入力を許す
		return ErrOTPMismatch
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}

	// パスワード更新後にエントリを消費する
	return u.otps.Delete(ctx, userID)
}
