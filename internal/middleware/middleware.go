package middleware

import (
	"fmt"
	"strings"

	"job-board/internal/apperr"
	"job-board/internal/database"
	"job-board/internal/model"
	"job-board/internal/store"

	"github.com/labstack/echo/v4"
)

const ContextAdminKey = "admin"

// TokenVerifier resolves an access token to an admin id.
type TokenVerifier interface {
	Verify(token string) (int, error)
}

var getAdminByID = store.GetAdminByID

// bearerToken returns the token of the Authorization header; ok is false when the header is absent.
func bearerToken(c echo.Context) (string, bool, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false, nil
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", true, apperr.Unauthorized("invalid authorization header format")
	}
	return strings.TrimSpace(token), true, nil
}

// authenticate 驗證 token 並載入對應的 admin
func authenticate(c echo.Context, tokens TokenVerifier, db database.DB, token string) (*model.Admin, error) {
	adminID, err := tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	admin, err := getAdminByID(c.Request().Context(), db, adminID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("unknown admin")
		}
		return nil, fmt.Errorf("load admin: %w", err)
	}
	return admin, nil
}

// RequireAuth 需要有效的 Bearer token，否則回傳 401
func RequireAuth(tokens TokenVerifier, db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, present, err := bearerToken(c)
			if err != nil {
				return err
			}
			if !present {
				return apperr.Unauthorized("missing token")
			}
			admin, err := authenticate(c, tokens, db, token)
			if err != nil {
				return err
			}
			c.Set(ContextAdminKey, admin)
			return next(c)
		}
	}
}

// OptionalAuth 沒有 Authorization header 時以匿名身分繼續；帶了無效 token 仍回傳 401
func OptionalAuth(tokens TokenVerifier, db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, present, err := bearerToken(c)
			if err != nil {
				return err
			}
			if present {
				admin, err := authenticate(c, tokens, db, token)
				if err != nil {
					return err
				}
				c.Set(ContextAdminKey, admin)
			}
			return next(c)
		}
	}
}

// CurrentAdmin 回傳已驗證的 admin，匿名時為 nil
func CurrentAdmin(c echo.Context) *model.Admin {
	admin, _ := c.Get(ContextAdminKey).(*model.Admin)
	return admin
}
