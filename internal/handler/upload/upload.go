// File: internal/handler/upload/upload.go
package upload

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"job-board/internal/apperr"
	"job-board/internal/asset"
	"job-board/internal/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// multipartOverhead 保留給 multipart 邊界與欄位標頭的空間
const multipartOverhead = 64 << 10

var newPublicID = uuid.NewString

// Options 上傳限制
type Options struct {
	MaxBytes   int64
	Extensions []string
}

func (o Options) allowed(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext != "" && slices.Contains(o.Extensions, ext)
}

func (o Options) tooLarge() error {
	return apperr.TooLarge("File exceeds the %d byte limit", o.MaxBytes)
}

// UploadHandler 上傳公司 logo 到圖床，回傳之後建立職缺要用的 path
// @Summary     上傳 logo
// @Description multipart 欄位 file；僅接受 png/jpg，上限 5 MiB
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file     true "圖片檔"
// @Success     200  {object} dto.UploadResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     413  {object} dto.HTTPError
// @Failure     422  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /upload [post]
func UploadHandler(uploader asset.Uploader, opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.ContentLength > opts.MaxBytes+multipartOverhead {
			return opts.tooLarge()
		}
		req.Body = http.MaxBytesReader(c.Response(), req.Body, opts.MaxBytes+multipartOverhead)

		fh, err := c.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			switch {
			case errors.As(err, &maxErr):
				return opts.tooLarge()
			case errors.Is(err, http.ErrMissingFile):
				return apperr.BadRequest("No file part")
			default:
				return apperr.Wrap(err, apperr.CodeBadRequest, "Malformed multipart body")
			}
		}
		if fh.Filename == "" {
			return apperr.BadRequest("No selected file")
		}
		if fh.Size > opts.MaxBytes {
			return opts.tooLarge()
		}
		if !opts.allowed(fh.Filename) {
			return apperr.Unprocessable("File type not allowed")
		}

		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()

		handle, err := uploader.Upload(req.Context(), newPublicID(), fh.Filename, f)
		if err != nil {
			return fmt.Errorf("upload asset: %w", err)
		}
		return c.JSON(http.StatusOK, dto.UploadResponse{Path: handle})
	}
}
