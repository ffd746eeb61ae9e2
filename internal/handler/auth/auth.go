// File: internal/handler/auth/auth.go
package auth

import (
	"fmt"
	"net/http"

	"job-board/internal/apperr"
	"job-board/internal/database"
	"job-board/internal/dto"
	"job-board/internal/schema"
	"job-board/internal/service"
	"job-board/internal/store"

	"github.com/labstack/echo/v4"
)

// TokenIssuer 簽發 access token
type TokenIssuer interface {
	Issue(adminID int) (string, error)
}

var (
	loadAdmin         = schema.LoadAdmin
	createAdmin       = store.CreateAdmin
	getAdminByEmail   = store.GetAdminByEmail
	authenticateAdmin = service.AuthenticateAdmin
)

// RegisterHandler 建立管理員並回傳 access token
// @Summary     註冊管理員
// @Description Email 會去除空白並轉小寫；重複的 Email 回傳 422
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.AuthResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     422  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /register [post]
func RegisterHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
		if err := schema.Bind(c, &req); err != nil {
			return err
		}
		admin, err := loadAdmin(req)
		if err != nil {
			return err
		}
		admin, err = createAdmin(c.Request().Context(), db, admin)
		if err != nil {
			return err
		}

		token, err := tokens.Issue(admin.ID)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		return c.JSON(http.StatusCreated, dto.AuthResponse{Data: schema.DumpAdmin(*admin), Token: token})
	}
}

// LoginHandler 使用 Email/Password 驗證並回傳 access token
// @Summary     管理員登入
// @Description Email 或密碼錯誤皆回傳 422 Invalid email or password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.AuthResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     422  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /login [post]
func LoginHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := schema.Bind(c, &req); err != nil {
			return err
		}
		req, err := schema.LoadCredentials(req)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		admin, err := getAdminByEmail(ctx, db, req.Email)
		if apperr.IsNotFound(err) {
			return apperr.Unprocessable(service.InvalidCredentialsMessage)
		}
		if err != nil {
			return err
		}
		if err := authenticateAdmin(ctx, *admin, req.Password); err != nil {
			return err
		}

		token, err := tokens.Issue(admin.ID)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		return c.JSON(http.StatusOK, dto.AuthResponse{Data: schema.DumpAdmin(*admin), Token: token})
	}
}
