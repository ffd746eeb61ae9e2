// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"job-board/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// Claims 定義 JWT 負載內容
type Claims struct {
	AdminID int `json:"admin_id"`
	jwt.RegisteredClaims
}

// TokenService 以 HS256 簽發與驗證 access token
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret not set")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl %s", ttl)
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue 依據 admin id 產生 JWT
func (s *TokenService) Issue(adminID int) (string, error) {
	now := timeNow()
	claims := Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(adminID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify 驗證 JWT 並回傳 admin id；格式錯誤、簽章不符或過期皆回傳 401
func (s *TokenService) Verify(tokenString string) (int, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(timeNow),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, apperr.Wrap(err, apperr.CodeUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AdminID <= 0 {
		return 0, apperr.Unauthorized("Invalid or expired token")
	}
	return claims.AdminID, nil
}
