package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"job-board/internal/apperr"
	"job-board/internal/asset/mock_asset"
	"job-board/internal/database"
	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/model"
	"job-board/internal/schema"
	"job-board/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validBody = `{"title":"Backend","description":"<p>Go</p><script>x</script>","vacancy":2,
	"salary":"Negotiable","location":"Taipei","type":1,"company_name":"ACME",
	"company_logo":"logo-1","company_email":"jobs@acme.test"}`

func restore() {
	listJobs = store.ListJobs
	getJobByID = store.GetJobByID
	createJob = store.CreateJob
	deleteJob = store.DeleteJob
	getAdminByEmail = store.GetAdminByEmail
	firstAdmin = store.FirstAdmin
}

func notFound(msg string) error {
	return apperr.Wrap(pgx.ErrNoRows, apperr.CodeNotFound, msg)
}

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newIDCtx(method, id string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newCtx(method, "/api/jobs/"+id, "")
	c.SetPath("/api/jobs/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func sampleJob(id, owner int) *model.Job {
	return &model.Job{ID: id, AdminID: owner, Title: "Backend", CompanyLogo: "logo-1", CreatedAt: time.Now()}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{"": 1, "abc": 1, "0": 1, "-3": 1, "1": 1, "4": 4}
	for in, want := range cases {
		require.Equal(t, want, parsePage(in), in)
	}
}

func TestListJobsHandler(t *testing.T) {
	t.Cleanup(restore)
	ctrl := gomock.NewController(t)
	urls := mock_asset.NewMockStore(ctrl)
	urls.EXPECT().URL("logo-1").Return("https://cdn/logo-1").AnyTimes()

	var gotPage, gotPer int
	listJobs = func(_ context.Context, _ database.DB, page, perPage int) ([]model.Job, int, error) {
		gotPage, gotPer = page, perPage
		if page > 2 {
			return []model.Job{}, 20, nil
		}
		return []model.Job{*sampleJob(2, 1), *sampleJob(1, 1)}, 20, nil
	}

	ctx, rec := newCtx(http.MethodGet, "/api/jobs?page=abc", "")
	require.NoError(t, ListJobsHandler(&database.FakeDB{}, urls)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, gotPage)
	require.Equal(t, PerPage, gotPer)

	var resp dto.JobListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "https://cdn/logo-1", resp.Data[0].CompanyLogo)
	require.Equal(t, dto.PageMeta{Total: 20, Page: 1, PerPage: 15}, resp.Meta)

	ctx, rec = newCtx(http.MethodGet, "/api/jobs?page=3", "")
	require.NoError(t, ListJobsHandler(&database.FakeDB{}, urls)(ctx))
	require.JSONEq(t, `{"data":[],"meta":{"total":20,"page":3,"per_page":15}}`, rec.Body.String())

	listJobs = func(context.Context, database.DB, int, int) ([]model.Job, int, error) {
		return nil, 0, errors.New("db down")
	}
	ctx, _ = newCtx(http.MethodGet, "/api/jobs", "")
	require.EqualError(t, ListJobsHandler(&database.FakeDB{}, urls)(ctx), "db down")
}

func TestGetJobHandler(t *testing.T) {
	t.Cleanup(restore)
	ctrl := gomock.NewController(t)
	urls := mock_asset.NewMockStore(ctrl)

	getJobByID = func(_ context.Context, _ database.DB, id int) (*model.Job, error) {
		if id == 3 {
			return sampleJob(3, 1), nil
		}
		return nil, notFound("Job not found")
	}

	urls.EXPECT().URL("logo-1").Return("https://cdn/logo-1")
	ctx, rec := newIDCtx(http.MethodGet, "3")
	require.NoError(t, GetJobHandler(&database.FakeDB{}, urls)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.JobEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Data.ID)
	require.NotContains(t, rec.Body.String(), "admin_id")

	for _, id := range []string{"4", "abc"} {
		ctx, _ = newIDCtx(http.MethodGet, id)
		require.True(t, apperr.IsNotFound(GetJobHandler(&database.FakeDB{}, urls)(ctx)), id)
	}
}

func TestCreateJobHandlerAuthenticated(t *testing.T) {
	t.Cleanup(restore)
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	assets.EXPECT().Exists(gomock.Any(), "logo-1").Return(true, nil)
	assets.EXPECT().URL("logo-1").Return("https://cdn/logo-1")

	createJob = func(_ context.Context, _ database.DB, j *model.Job) (*model.Job, error) {
		require.Equal(t, 5, j.AdminID)
		require.Equal(t, "<p>Go</p>", j.Description)
		j.ID = 9
		return j, nil
	}

	ctx, rec := newCtx(http.MethodPost, "/api/jobs", validBody)
	ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 5})
	h := CreateJobHandler(&database.FakeDB{}, schema.NewJobLoader(assets), assets, Options{})
	require.NoError(t, h(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.JobEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 9, resp.Data.ID)
	require.Equal(t, "https://cdn/logo-1", resp.Data.CompanyLogo)
}

func TestCreateJobHandlerAnonymous(t *testing.T) {
	t.Cleanup(restore)
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	loader := schema.NewJobLoader(assets)

	// disabled
	ctx, _ := newCtx(http.MethodPost, "/api/jobs", validBody)
	err := CreateJobHandler(&database.FakeDB{}, loader, assets, Options{AllowAnonymous: false})(ctx)
	require.True(t, apperr.IsUnauthorized(err))

	// first admin owns the job
	firstAdmin = func(context.Context, database.DB) (*model.Admin, error) { return &model.Admin{ID: 1}, nil }
	createJob = func(_ context.Context, _ database.DB, j *model.Job) (*model.Job, error) {
		require.Equal(t, 1, j.AdminID)
		j.ID = 10
		return j, nil
	}
	assets.EXPECT().Exists(gomock.Any(), "logo-1").Return(true, nil).Times(2)
	assets.EXPECT().URL("logo-1").Return("https://cdn/logo-1").Times(2)
	ctx, rec := newCtx(http.MethodPost, "/api/jobs", validBody)
	require.NoError(t, CreateJobHandler(&database.FakeDB{}, loader, assets, Options{AllowAnonymous: true})(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)

	// configured fallback admin
	getAdminByEmail = func(_ context.Context, _ database.DB, email string) (*model.Admin, error) {
		require.Equal(t, "boss@example.com", email)
		return &model.Admin{ID: 4}, nil
	}
	createJob = func(_ context.Context, _ database.DB, j *model.Job) (*model.Job, error) {
		require.Equal(t, 4, j.AdminID)
		return j, nil
	}
	ctx, _ = newCtx(http.MethodPost, "/api/jobs", validBody)
	opts := Options{AllowAnonymous: true, FallbackAdminEmail: "boss@example.com"}
	require.NoError(t, CreateJobHandler(&database.FakeDB{}, loader, assets, opts)(ctx))

	// no admin exists
	firstAdmin = func(context.Context, database.DB) (*model.Admin, error) { return nil, notFound("Admin not found") }
	ctx, _ = newCtx(http.MethodPost, "/api/jobs", validBody)
	err = CreateJobHandler(&database.FakeDB{}, loader, assets, Options{AllowAnonymous: true})(ctx)
	require.True(t, apperr.IsUnauthorized(err))

	firstAdmin = func(context.Context, database.DB) (*model.Admin, error) { return nil, errors.New("db down") }
	ctx, _ = newCtx(http.MethodPost, "/api/jobs", validBody)
	err = CreateJobHandler(&database.FakeDB{}, loader, assets, Options{AllowAnonymous: true})(ctx)
	require.EqualError(t, err, "db down")
}

func TestCreateJobHandlerInvalid(t *testing.T) {
	t.Cleanup(restore)
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	loader := schema.NewJobLoader(assets)

	ctx, _ := newCtx(http.MethodPost, "/api/jobs", `{"title":"x","vacancy":"two"}`)
	ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 5})
	err := CreateJobHandler(&database.FakeDB{}, loader, assets, Options{})(ctx)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	require.Equal(t, []string{"Not a valid integer."}, appErr.Fields["vacancy"])

	ctx, _ = newCtx(http.MethodPost, "/api/jobs", `{"title":"x","type":3}`)
	ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 5})
	err = CreateJobHandler(&database.FakeDB{}, loader, assets, Options{})(ctx)
	appErr, _ = apperr.As(err)
	require.Equal(t, []string{"Must be one of: 1, 2."}, appErr.Fields["type"])
	require.Contains(t, appErr.Fields, "description")
}

func TestDeleteJobHandler(t *testing.T) {
	t.Cleanup(restore)
	getJobByID = func(_ context.Context, _ database.DB, id int) (*model.Job, error) {
		if id == 3 {
			return sampleJob(3, 5), nil
		}
		return nil, notFound("Job not found")
	}
	deleted := 0
	deleteJob = func(_ context.Context, _ database.DB, id int) error {
		deleted = id
		return nil
	}

	ctx, _ := newIDCtx(http.MethodDelete, "3")
	require.True(t, apperr.IsUnauthorized(DeleteJobHandler(&database.FakeDB{})(ctx)))

	ctx, _ = newIDCtx(http.MethodDelete, "3")
	ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 6})
	require.True(t, apperr.IsForbidden(DeleteJobHandler(&database.FakeDB{})(ctx)))
	require.Zero(t, deleted)

	for _, id := range []string{"4", "x"} {
		ctx, _ = newIDCtx(http.MethodDelete, id)
		ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 5})
		require.True(t, apperr.IsNotFound(DeleteJobHandler(&database.FakeDB{})(ctx)), id)
	}

	ctx, rec := newIDCtx(http.MethodDelete, "3")
	ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 5})
	require.NoError(t, DeleteJobHandler(&database.FakeDB{})(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"success"}`, rec.Body.String())
	require.Equal(t, 3, deleted)

	deleteJob = func(context.Context, database.DB, int) error { return errors.New("db down") }
	ctx, _ = newIDCtx(http.MethodDelete, "3")
	ctx.Set(middleware.ContextAdminKey, &model.Admin{ID: 5})
	require.EqualError(t, DeleteJobHandler(&database.FakeDB{})(ctx), "db down")
}
