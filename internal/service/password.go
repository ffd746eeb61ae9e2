// File: internal/service/password.go
package service

import (
	"context"

	"job-board/internal/apperr"
	"job-board/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 是 bcrypt 的 work factor
const PasswordCost = 12

// InvalidCredentialsMessage 登入失敗時不區分 email 或密碼錯誤
const InvalidCredentialsMessage = "Invalid email or password"

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串 (每次產生新的 salt)
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// SetPassword 重新雜湊並寫入 admin.PasswordHash
func SetPassword(admin *model.Admin, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	return nil
}

// CheckPassword 比對明文密碼與 admin 的 bcrypt 哈希
func CheckPassword(admin model.Admin, password string) bool {
	if admin.PasswordHash == "" {
		return false
	}
	return bcryptCompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}

// AuthenticateAdmin 驗證密碼，失敗回傳 422 Invalid email or password
func AuthenticateAdmin(_ context.Context, admin model.Admin, password string) error {
	if !CheckPassword(admin, password) {
		return apperr.Unprocessable(InvalidCredentialsMessage)
	}
	return nil
}
