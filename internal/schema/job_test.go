package schema

import (
	"context"
	"errors"
	"testing"
	"time"

	"job-board/internal/asset/mock_asset"
	"job-board/internal/dto"
	"job-board/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int { return &v }

func validJob() dto.JobRequest {
	return dto.JobRequest{
		Title:        "Backend Engineer",
		Description:  "<p>Go</p><script>alert(1)</script>",
		Vacancy:      intPtr(2),
		Salary:       "Negotiable",
		Location:     "Taipei",
		Type:         intPtr(model.JobTypePartTime),
		CompanyName:  "ACME",
		CompanyLogo:  "logo-1",
		CompanyEmail: "jobs@acme.test",
	}
}

func TestJobLoaderLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	l := NewJobLoader(assets)

	assets.EXPECT().Exists(gomock.Any(), "logo-1").Return(true, nil)
	j, err := l.Load(context.Background(), validJob(), 7)
	require.NoError(t, err)
	require.Equal(t, 7, j.AdminID)
	require.Equal(t, "<p>Go</p>", j.Description)
	require.Equal(t, 2, j.Vacancy)
	require.Equal(t, model.JobTypePartTime, j.Type)
	require.Equal(t, "logo-1", j.CompanyLogo)
}

func TestJobLoaderLogoMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	l := NewJobLoader(assets)

	assets.EXPECT().Exists(gomock.Any(), "logo-1").Return(false, nil)
	_, err := l.Load(context.Background(), validJob(), 7)
	require.Equal(t, []string{"does not exist"}, fieldsOf(t, err)["company_logo"])

	req := validJob()
	req.Type = intPtr(3)
	assets.EXPECT().Exists(gomock.Any(), "logo-1").Return(false, nil)
	_, err = l.Load(context.Background(), req, 7)
	fields := fieldsOf(t, err)
	require.Equal(t, []string{"Must be one of: 1, 2."}, fields["type"])
	require.Equal(t, []string{"does not exist"}, fields["company_logo"])
}

func TestJobLoaderValidationSkipsEmptyLogo(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewJobLoader(mock_asset.NewMockStore(ctrl))

	_, err := l.Load(context.Background(), dto.JobRequest{}, 7)
	fields := fieldsOf(t, err)
	require.Len(t, fields, 9)
	require.Equal(t, []string{"Missing data for required field."}, fields["company_logo"])
}

func TestJobLoaderAssetFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	l := NewJobLoader(assets)

	down := errors.New("asset host down")
	assets.EXPECT().Exists(gomock.Any(), "logo-1").Return(false, down)
	_, err := l.Load(context.Background(), validJob(), 7)
	require.ErrorIs(t, err, down)
}

func TestSanitizeIdempotent(t *testing.T) {
	l := NewJobLoader(nil)
	in := `<h1 onclick="x()">Title</h1><ul><li>a</li></ul><a href="http://x">link</a><img src=x><p>Tom &amp; Jerry</p>`
	once := l.Sanitize(in)
	require.Equal(t, `<h1>Title</h1><ul><li>a</li></ul>link<p>Tom &amp; Jerry</p>`, once)
	require.Equal(t, once, l.Sanitize(once))
	require.Equal(t, "<p>ok</p>", l.Sanitize("<p>ok</p><script>alert(1)</script>"))
}

func TestJobLoaderLoadPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	assets := mock_asset.NewMockStore(ctrl)
	l := NewJobLoader(assets)
	ctx := context.Background()

	out, err := l.LoadPartial(ctx, []byte(`{"title":"Lead","description":"<h2>x</h2><b>y</b>","vacancy":4,"owner":1}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": "Lead", "description": "<h2>x</h2>y", "vacancy": 4}, out)

	_, err = l.LoadPartial(ctx, []byte(`{"type":5}`))
	require.Equal(t, []string{"Must be one of: 1, 2."}, fieldsOf(t, err)["type"])

	_, err = l.LoadPartial(ctx, []byte(`{"vacancy":"many"}`))
	require.Equal(t, []string{"Not a valid integer."}, fieldsOf(t, err)["vacancy"])

	assets.EXPECT().Exists(gomock.Any(), "logo-2").Return(false, nil)
	_, err = l.LoadPartial(ctx, []byte(`{"company_logo":"logo-2"}`))
	require.Equal(t, []string{"does not exist"}, fieldsOf(t, err)["company_logo"])

	assets.EXPECT().Exists(gomock.Any(), "logo-3").Return(true, nil)
	out, err = l.LoadPartial(ctx, []byte(`{"company_logo":"logo-3","type":1}`))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"company_logo": "logo-3", "type": 1}, out)

	out, err = l.LoadPartial(ctx, []byte(`{"unknown":true}`))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDump(t *testing.T) {
	ctrl := gomock.NewController(t)
	urls := mock_asset.NewMockStore(ctrl)
	loc := time.FixedZone("UTC+8", 8*3600)
	created := time.Date(2025, 5, 1, 20, 0, 0, 0, loc)

	a := DumpAdmin(model.Admin{ID: 1, Email: "a@b.co", Name: "A", PasswordHash: "hash", CreatedAt: created})
	require.Equal(t, dto.AdminResponse{ID: 1, Email: "a@b.co", Name: "A", CreatedAt: created.UTC()}, a)
	require.Equal(t, time.UTC, a.CreatedAt.Location())

	urls.EXPECT().URL("logo-1").Return("https://cdn.example.com/logo-1").Times(2)
	j := model.Job{ID: 3, AdminID: 7, Title: "T", CompanyLogo: "logo-1", CreatedAt: created}
	out := DumpJob(j, urls)
	require.Equal(t, "https://cdn.example.com/logo-1", out.CompanyLogo)
	require.Equal(t, 3, out.ID)
	require.Equal(t, time.UTC, out.CreatedAt.Location())

	list := DumpJobs([]model.Job{j}, urls)
	require.Len(t, list, 1)
	require.NotNil(t, DumpJobs(nil, urls))
}
