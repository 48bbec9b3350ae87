package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"kalakraft_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// mockOTPRepository is a mock implementation of the OTPRepository interface
// backed by a plain map. It mimics the overwrite-on-save semantics of the
// real stores.
type mockOTPRepository struct {
	entries map[uint]*entity.OTPEntry
	saveErr error
}

func newMockOTPRepository() *mockOTPRepository {
	return &mockOTPRepository{entries: map[uint]*entity.OTPEntry{}}
}

func (m *mockOTPRepository) Save(ctx context.Context, entry *entity.OTPEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *entry
	m.entries[entry.UserID] = &cp
	return nil
}

func (m *mockOTPRepository) Find(ctx context.Context, userID uint) (*entity.OTPEntry, error) {
	entry, ok := m.entries[userID]
	if !ok {
		return nil, ErrOTPNotFound
	}
	cp := *entry
	return &cp, nil
}

func (m *mockOTPRepository) Delete(ctx context.Context, userID uint) error {
	delete(m.entries, userID)
	return nil
}

// mockMailer records sent mail instead of talking to SMTP.
type mockMailer struct {
	sent    []string
	sendErr error
}

func (m *mockMailer) Send(to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, to)
	return nil
}

func testUserRepo(user *entity.User) *mockUserRepository {
	return &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id == user.ID {
				cp := *user
				return &cp, nil
			}
			return nil, ErrUserNotFound
		},
		UpdatePasswordFunc: func(ctx context.Context, id uint, passwordHash string) error {
			user.Password = passwordHash
			return nil
		},
	}
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP(OTPLength)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != OTPLength {
			t.Fatalf("expected %d digits, got %q", OTPLength, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in otp: %q", code)
			}
		}
		seen[code] = true
	}
	// 50 draws of a 6-digit code virtually never collapse to one value
	if len(seen) < 2 {
		t.Error("otp generation looks constant")
	}
}

func TestResetUsecase_Request(t *testing.T) {
	user := &entity.User{ID: 7, Email: "maya@example.com", Password: "old-hash"}

	t.Run("stores entry and mails the code", func(t *testing.T) {
		otps := newMockOTPRepository()
		mailer := &mockMailer{}
		uc := NewResetUsecase(testUserRepo(user), otps, mailer)

		if err := uc.Request(context.Background(), 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entry, err := otps.Find(context.Background(), 7)
		if err != nil {
			t.Fatalf("expected entry to be stored: %v", err)
		}
		if len(entry.Code) != OTPLength {
			t.Errorf("expected %d-digit code, got %q", OTPLength, entry.Code)
		}
		if entry.IsExpired() {
			t.Error("fresh entry must not be expired")
		}
		if remaining := time.Until(entry.ExpiresAt); remaining > OTPWindow {
			t.Errorf("expiry window too long: %v", remaining)
		}
		if len(mailer.sent) != 1 || mailer.sent[0] != "maya@example.com" {
			t.Errorf("expected one mail to the account address, got: %v", mailer.sent)
		}
	})

	t.Run("new request overwrites the previous entry", func(t *testing.T) {
		otps := newMockOTPRepository()
		uc := NewResetUsecase(testUserRepo(user), otps, &mockMailer{})

		if err := uc.Request(context.Background(), 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, _ := otps.Find(context.Background(), 7)

		// Force a different code by retrying until it changes; one retry is
		// almost always enough for a 6-digit space.
		var second *entity.OTPEntry
		for i := 0; i < 10; i++ {
			if err := uc.Request(context.Background(), 7); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, _ = otps.Find(context.Background(), 7)
			if second.Code != first.Code {
				break
			}
		}
		if len(otps.entries) != 1 {
			t.Errorf("expected exactly one live entry, got %d", len(otps.entries))
		}
		if second.Code == first.Code {
			t.Skip("codes collided repeatedly; astronomically unlikely")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewResetUsecase(testUserRepo(user), newMockOTPRepository(), &mockMailer{})
		if err := uc.Request(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})

	t.Run("mail failure surfaces", func(t *testing.T) {
		mailer := &mockMailer{sendErr: errors.New("smtp down")}
		uc := NewResetUsecase(testUserRepo(user), newMockOTPRepository(), mailer)
		if err := uc.Request(context.Background(), 7); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}

func TestResetUsecase_Confirm(t *testing.T) {
	newEntry := func(code string, expiresIn time.Duration) *entity.OTPEntry {
		return &entity.OTPEntry{UserID: 7, Code: code, ExpiresAt: time.Now().Add(expiresIn)}
	}

	t.Run("correct code within window succeeds exactly once", func(t *testing.T) {
		user := &entity.User{ID: 7, Email: "maya@example.com", Password: "old-hash"}
		otps := newMockOTPRepository()
		_ = otps.Save(context.Background(), newEntry("123456", OTPWindow))
		uc := NewResetUsecase(testUserRepo(user), otps, &mockMailer{})

		if err := uc.Confirm(context.Background(), 7, "123456", "brand-new-password"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Password hash was replaced and verifies against the new password
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("brand-new-password")); err != nil {
			t.Errorf("stored hash does not match new password: %v", err)
		}

		// Second use of the same code must fail (entry consumed)
		err := uc.Confirm(context.Background(), 7, "123456", "brand-new-password")
		if !errors.Is(err, ErrOTPNotFound) {
			t.Errorf("expected ErrOTPNotFound on reuse, got: %v", err)
		}
	})

	t.Run("expired entry fails even with the correct code", func(t *testing.T) {
		user := &entity.User{ID: 7, Email: "maya@example.com", Password: "old-hash"}
		otps := newMockOTPRepository()
		_ = otps.Save(context.Background(), newEntry("123456", -time.Minute))
		uc := NewResetUsecase(testUserRepo(user), otps, &mockMailer{})

		err := uc.Confirm(context.Background(), 7, "123456", "brand-new-password")
		if !errors.Is(err, ErrOTPExpired) {
			t.Errorf("expected ErrOTPExpired, got: %v", err)
		}
		if user.Password != "old-hash" {
			t.Error("password must not change on expired code")
		}
		// The expired entry is cleaned up
		if _, err := otps.Find(context.Background(), 7); !errors.Is(err, ErrOTPNotFound) {
			t.Errorf("expected expired entry to be deleted, got: %v", err)
		}
	})

	t.Run("wrong code keeps the entry pending", func(t *testing.T) {
		user := &entity.User{ID: 7, Email: "maya@example.com", Password: "old-hash"}
		otps := newMockOTPRepository()
		_ = otps.Save(context.Background(), newEntry("123456", OTPWindow))
		uc := NewResetUsecase(testUserRepo(user), otps, &mockMailer{})

		err := uc.Confirm(context.Background(), 7, "654321", "brand-new-password")
		if !errors.Is(err, ErrOTPMismatch) {
			t.Errorf("expected ErrOTPMismatch, got: %v", err)
		}
		if user.Password != "old-hash" {
			t.Error("password must not change on wrong code")
		}

		// Retrying with the right code still works
		if err := uc.Confirm(context.Background(), 7, "123456", "brand-new-password"); err != nil {
			t.Errorf("retry with correct code failed: %v", err)
		}
	})

	t.Run("no pending entry", func(t *testing.T) {
		user := &entity.User{ID: 7, Email: "maya@example.com", Password: "old-hash"}
		uc := NewResetUsecase(testUserRepo(user), newMockOTPRepository(), &mockMailer{})

		err := uc.Confirm(context.Background(), 7, "123456", "brand-new-password")
		if !errors.Is(err, ErrOTPNotFound) {
			t.Errorf("expected ErrOTPNotFound, got: %v", err)
		}
	})

	t.Run("short password rejected before any store access", func(t *testing.T) {
		user := &entity.User{ID: 7, Email: "maya@example.com", Password: "old-hash"}
		otps := newMockOTPRepository()
		_ = otps.Save(context.Background(), newEntry("123456", OTPWindow))
		uc := NewResetUsecase(testUserRepo(user), otps, &mockMailer{})

		if err := uc.Confirm(context.Background(), 7, "123456", "short"); err == nil {
			t.Fatal("expected error but got nil")
		}
		// Entry survives a validation failure
		if _, err := otps.Find(context.Background(), 7); err != nil {
			t.Errorf("entry should still be pending: %v", err)
		}
	})
}
