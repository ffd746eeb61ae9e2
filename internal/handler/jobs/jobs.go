// File: internal/handler/jobs/jobs.go
package jobs

import (
	"net/http"
	"strconv"

	"job-board/internal/apperr"
	"job-board/internal/asset"
	"job-board/internal/database"
	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/model"
	"job-board/internal/schema"
	"job-board/internal/store"

	"github.com/labstack/echo/v4"
)

// PerPage 每頁職缺數
const PerPage = 15

var (
	listJobs        = store.ListJobs
	getJobByID      = store.GetJobByID
	createJob       = store.CreateJob
	deleteJob       = store.DeleteJob
	getAdminByEmail = store.GetAdminByEmail
	firstAdmin      = store.FirstAdmin
)

// Options 控制匿名張貼職缺
type Options struct {
	AllowAnonymous bool
	// FallbackAdminEmail 為匿名職缺的擁有者；空字串時使用 id 最小的 admin
	FallbackAdminEmail string
}

// parsePage 非數字或小於 1 時回傳 1
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseJobID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperr.NotFound("Job not found")
	}
	return id, nil
}

// ListJobsHandler 分頁列出職缺
// @Summary     列出職缺
// @Description 依建立時間由新到舊，每頁 15 筆；page 無效時視為 1
// @Tags        jobs
// @Produce     json
// @Param       page query    int false "頁碼 (從 1 開始)"
// @Success     200  {object} dto.JobListResponse
// @Failure     500  {object} dto.HTTPError
// @Router      /jobs [get]
func ListJobsHandler(db database.DB, urls asset.URLBuilder) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := parsePage(c.QueryParam("page"))
		list, total, err := listJobs(c.Request().Context(), db, page, PerPage)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.JobListResponse{
			Data: schema.DumpJobs(list, urls),
			Meta: dto.PageMeta{Total: total, Page: page, PerPage: PerPage},
		})
	}
}

// GetJobHandler 取得單一職缺
// @Summary     取得職缺
// @Tags        jobs
// @Produce     json
// @Param       id  path     int true "職缺 ID"
// @Success     200 {object} dto.JobEnvelope
// @Failure     404 {object} dto.HTTPError
// @Router      /jobs/{id} [get]
func GetJobHandler(db database.DB, urls asset.URLBuilder) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseJobID(c)
		if err != nil {
			return err
		}
		job, err := getJobByID(c.Request().Context(), db, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.JobEnvelope{Data: schema.DumpJob(*job, urls)})
	}
}

// CreateJobHandler 建立職缺；未登入時歸屬於備援 admin
// @Summary     建立職缺
// @Description 登入可選；匿名張貼關閉或找不到備援 admin 時回傳 401。company_logo 必須存在於圖床
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       body body     dto.JobRequest true "職缺資料"
// @Success     201  {object} dto.JobEnvelope
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /jobs [post]
func CreateJobHandler(db database.DB, loader *schema.JobLoader, urls asset.URLBuilder, opts Options) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		owner := middleware.CurrentAdmin(c)
		if owner == nil {
			var err error
			if owner, err = anonymousOwner(c, db, opts); err != nil {
				return err
			}
		}

		var req dto.JobRequest
		if err := schema.Bind(c, &req); err != nil {
			return err
		}
		job, err := loader.Load(ctx, req, owner.ID)
		if err != nil {
			return err
		}
		job, err = createJob(ctx, db, job)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, dto.JobEnvelope{Data: schema.DumpJob(*job, urls)})
	}
}

func anonymousOwner(c echo.Context, db database.DB, opts Options) (*model.Admin, error) {
	if !opts.AllowAnonymous {
		return nil, apperr.Unauthorized("missing token")
	}
	var (
		owner *model.Admin
		err   error
	)
	if opts.FallbackAdminEmail != "" {
		owner, err = getAdminByEmail(c.Request().Context(), db, opts.FallbackAdminEmail)
	} else {
		owner, err = firstAdmin(c.Request().Context(), db)
	}
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized("no admin available to own anonymous jobs")
	}
	return owner, err
}

// DeleteJobHandler 刪除自己擁有的職缺
// @Summary     刪除職缺
// @Tags        jobs
// @Produce     json
// @Param       id  path     int true "職缺 ID"
// @Success     200 {object} dto.MessageResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Security    BearerAuth
// @Router      /jobs/{id} [delete]
func DeleteJobHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor := middleware.CurrentAdmin(c)
		if actor == nil {
			return apperr.Unauthorized("missing token")
		}
		id, err := parseJobID(c)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		job, err := getJobByID(ctx, db, id)
		if err != nil {
			return err
		}
		if !job.OwnedBy(actor.ID) {
			return apperr.Forbidden("You are not allowed to delete this job")
		}
		if err := deleteJob(ctx, db, id); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "success"})
	}
}
