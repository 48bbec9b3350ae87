package usecase

import (
	"crypto/rand"
	"fmt"
)

// OTPLength はワンタイムパスワードの桁数です。
const OTPLength = 6

// GenerateOTP は暗号論的乱数からn桁の数字ワンタイムパスワードを生成します。
func GenerateOTP(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	otp := make([]byte, n)
	for i := 0; i < n; i++ {
		otp[i] = '0' + (bytes[i] % 10)
	}
	return string(otp), nil
}
