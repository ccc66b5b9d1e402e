package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/domain/model"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/export"
	"github.com/recruitdesk/recruit-web/internal/ports"
	"github.com/recruitdesk/recruit-web/internal/service"
	"github.com/recruitdesk/recruit-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRouter_RequiresServices(t *testing.T) {
	_, err := NewRouter(RouterServices{})
	require.Error(t, err)
}

func TestRouter_PublicPages(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	rec := app.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/signup"`)

	for _, path := range []string{"/login", "/signup"} {
		t.Run(path, func(t *testing.T) {
			rec := app.get(path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `name="csrf_token"`)
		})
	}

	rec = app.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_LoginContinuesToOrigin(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	app.auth.Credential = testutil.AdminToken(t, "ada@example.com", testutil.TestTime().Add(time.Hour))

	rec := app.get("/admin/jobs/new")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fadmin%2Fjobs%2Fnew", rec.Header().Get("Location"))

	rec = app.get("/login?redirect_uri=%2Fadmin%2Fjobs%2Fnew")
	assert.Contains(t, rec.Body.String(), `name="redirect_uri" value="/admin/jobs/new"`)

	rec = app.postForm("/login", url.Values{
		"email":        {"ada@example.com"},
		"password":     {"secret"},
		"redirect_uri": {"/admin/jobs/new"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/jobs/new", rec.Header().Get("Location"))
	assert.Equal(t, app.auth.Credential, app.store.Stored())

	rec = app.get("/admin/jobs/new")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
}

func TestRouter_LoginLandsOnRoleHome(t *testing.T) {
	tests := []struct {
		role domainauth.Role
		want string
	}{
		{role: domainauth.RoleAdmin, want: "/admin"},
		{role: domainauth.RoleCandidate, want: "/candidate"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			app := newTestApp(t, testAppOptions{})
			app.auth.Credential = testutil.MintToken(t, testutil.TokenClaims{
				Subject: "u-1", Email: "u@example.com", Role: tt.role, ExpiresAt: testutil.TestTime().Add(time.Hour),
			})

			rec := app.postForm("/login", url.Values{"email": {"u@example.com"}, "password": {"pw"}})
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))

			rec = app.get("/login")
			assert.Equal(t, http.StatusSeeOther, rec.Code, "signed-in users skip the login form")
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestRouter_LoginFailures(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		apiErr     error
		wantStatus int
		wantText   string
	}{
		{
			name: "missing email", email: "",
			wantStatus: http.StatusBadRequest, wantText: "Email is required",
		},
		{
			name: "rejected by auth api", email: "ada@example.com",
			apiErr:     apperrors.New(apperrors.ErrCodeInvalidCredentials, "Invalid email or password"),
			wantStatus: http.StatusUnauthorized, wantText: "Invalid email or password",
		},
		{
			name: "auth api unreachable", email: "ada@example.com",
			apiErr:     apperrors.New(apperrors.ErrCodeNetworkFailure, "dial tcp"),
			wantStatus: http.StatusBadGateway, wantText: "Login failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, testAppOptions{})
			app.auth.Err = tt.apiErr

			rec := app.postForm("/login", url.Values{"email": {tt.email}, "password": {"pw"}})
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantText)
			assert.Contains(t, rec.Body.String(), `value="`+tt.email+`"`, "email is kept")
			assert.False(t, app.sessions.Snapshot().IsAuthenticated())
		})
	}
}

func TestRouter_Signup(t *testing.T) {
	app := newTestApp(t, testAppOptions{})
	var gotRole domainauth.Role
	app.auth.SignupFunc = func(_ context.Context, in ports.SignupInput) (domainauth.Credential, error) {
		gotRole = in.Role
		return testutil.AdminToken(t, in.Email, testutil.TestTime().Add(time.Hour)), nil
	}

	rec := app.postForm("/signup", url.Values{
		"email": {"new@example.com"}, "password": {"pw"}, "role": {"admin"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	assert.Equal(t, domainauth.RoleAdmin, gotRole)
}

func TestRouter_SignupRejectsUnknownRole(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	rec := app.postForm("/signup", url.Values{
		"email": {"new@example.com"}, "password": {"pw"}, "role": {"owner"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose admin or candidate.")
	assert.Equal(t, 0, app.auth.SignupCalls())
}

func TestRouter_Logout(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleCandidate)

	rec := app.postForm("/logout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, app.sessions.Snapshot().IsAuthenticated())
	assert.Empty(t, app.store.Stored())

	rec = app.serve(cvRequest(t, "job-1", "resume.pdf", "application/pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouter_LogoutRequiresCSRFToken(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleCandidate)

	rec := app.serve(httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, app.sessions.Snapshot().IsAuthenticated())
}

func TestRouter_AuthStatus(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.Header.Set("Accept", "application/json")
	rec := app.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	assert.Equal(t, "ada@example.com", body.User.Email)
	assert.Equal(t, "admin", body.User.Role)
}

func TestRouter_RoleGate(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleCandidate)

	rec := app.get("/admin")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))

	rec = app.get("/unauthorized")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_PendingSessionHoldsNavigation(t *testing.T) {
	app := newTestApp(t, testAppOptions{skipRestore: true})

	rec := app.get("/admin")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	app.sessions.Restore(t.Context())
	rec = app.get("/admin")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouter_NotFound(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	rec := app.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
	assert.Contains(t, rec.Body.String(), "/login?redirect_uri=%2Fno%2Fsuch%2Fpage")

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	req.Header.Set("Accept", "application/json")
	rec = app.serve(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"not_found"`)
}

func TestRouter_MethodNotAllowedPassesThrough(t *testing.T) {
	app := newTestApp(t, testAppOptions{})

	rec := app.serve(newFormRequest(http.MethodPut, "/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_ExpiredCredentialMidAction(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleAdmin)
	app.backend.EXPECT().ListJobs(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.New(apperrors.ErrCodeUnauthorized, "jwt expired"))

	rec := app.get("/admin")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fadmin", rec.Header().Get("Location"))
	assert.False(t, app.sessions.Snapshot().IsAuthenticated())
	assert.Empty(t, app.store.Stored())

	rec = app.get("/login?redirect_uri=%2Fadmin")
	assert.Contains(t, rec.Body.String(), service.SessionExpiredNotice)

	rec = app.get("/login")
	assert.NotContains(t, rec.Body.String(), service.SessionExpiredNotice, "notice is shown once")
}

func TestRouter_CheckTimeExpiry(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleAdmin)
	app.clock.AddTime(2 * time.Hour)

	rec := app.get("/admin")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fadmin", rec.Header().Get("Location"))
	assert.Empty(t, app.store.Stored())
}

func TestRouter_AdminDashboard(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleAdmin)
	jobs := []model.Job{
		testutil.NewJob("job-1").WithTitle("Platform Engineer").WithCapacity(10, 4).Build(),
		testutil.NewJob("job-2").WithTitle("Data Analyst").Inactive().WithCapacity(0, 2).Build(),
	}
	app.backend.EXPECT().ListJobs(gomock.Any(), app.store.Stored()).Return(jobs, nil)

	rec := app.get("/admin?created=job-1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Platform Engineer")
	assert.Contains(t, body, "Data Analyst")
	assert.Contains(t, body, "Job created.")
	assert.Contains(t, body, `action="/admin/jobs/job-1/delete"`)
}

func TestRouter_CreateJob(t *testing.T) {
	t.Run("invalid form keeps values", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)

		rec := app.postForm("/admin/jobs", url.Values{
			"company":          {"Acme"},
			"max_applications": {"-3"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Title is required.")
		assert.Contains(t, body, "Description is required.")
		assert.Contains(t, body, "Max applications cannot be negative.")
		assert.Contains(t, body, `value="Acme"`)
	})

	t.Run("created", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domainauth.Credential, req model.CreateJobRequest) (model.Job, error) {
				assert.Equal(t, "Platform Engineer", req.Title)
				assert.Equal(t, []string{"Go", "Kubernetes"}, req.Requirements)
				assert.Equal(t, 25, req.MaxApplications)
				assert.True(t, req.IsActive)
				require.Len(t, req.Keywords, 2)
				return testutil.NewJob("job-9").WithTitle(req.Title).Build(), nil
			})

		rec := app.postForm("/admin/jobs", url.Values{
			"title":            {"Platform Engineer"},
			"description":      {"Run the platform."},
			"requirements":     {"Go\n\n Kubernetes \n"},
			"keywords":         {"go:3, kubernetes"},
			"max_applications": {"25"},
			"is_active":        {"1"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin?created=job-9", rec.Header().Get("Location"))
	})
}

func TestRouter_DeleteJob(t *testing.T) {
	t.Run("htmx", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().DeleteJob(gomock.Any(), gomock.Any(), "job-1").Return(nil)

		rec := app.serve(newHTMXRequest(http.MethodDelete, "/admin/jobs/job-1", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Job deleted.")
	})

	t.Run("htmx failure", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().DeleteJob(gomock.Any(), gomock.Any(), "job-1").
			Return(apperrors.New(apperrors.ErrCodeForbidden, "Only the owner can delete this job."))

		rec := app.serve(newHTMXRequest(http.MethodDelete, "/admin/jobs/job-1", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Only the owner can delete this job.")
	})

	t.Run("form post", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().DeleteJob(gomock.Any(), gomock.Any(), "job-1").Return(nil)

		rec := app.postForm("/admin/jobs/job-1/delete", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin?deleted=1", rec.Header().Get("Location"))
	})
}

func expectApplications(app *testApp) model.Job {
	job := testutil.NewJob("job-1").WithTitle("Platform Engineer").WithCapacity(10, 3).Build()
	apps := []model.Application{
		testutil.NewApplication("a1", "job-1", "first@example.com", 40, 0),
		testutil.NewApplication("a2", "job-1", "second@example.com", 90, time.Hour),
		testutil.NewApplication("a3", "job-1", "third@example.com", 65, 2*time.Hour),
	}
	app.backend.EXPECT().GetJob(gomock.Any(), gomock.Any(), "job-1").Return(job, nil)
	app.backend.EXPECT().ListApplications(gomock.Any(), gomock.Any(), "job-1").Return(apps, nil)
	return job
}

func assertOrder(t *testing.T, body string, emails ...string) {
	t.Helper()
	last := -1
	for _, e := range emails {
		idx := strings.Index(body, e)
		require.GreaterOrEqual(t, idx, 0, "%s missing", e)
		assert.Greater(t, idx, last, "%s out of order", e)
		last = idx
	}
}

func TestRouter_ApplicationsSorting(t *testing.T) {
	t.Run("default is score descending", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		expectApplications(app)

		rec := app.get("/admin/jobs/job-1/applications")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assertOrder(t, body, "second@example.com", "third@example.com", "first@example.com")
		assert.Contains(t, body, `href="/admin/jobs/job-1/applications?dir=asc&amp;sort=score"`)
		assert.Contains(t, body, `href="/admin/jobs/job-1/applications.xlsx?dir=desc&amp;sort=score"`)
	})

	t.Run("by date ascending", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		expectApplications(app)

		rec := app.get("/admin/jobs/job-1/applications?sort=createdAt&dir=asc")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assertOrder(t, body, "first@example.com", "second@example.com", "third@example.com")
		assert.Contains(t, body, `href="/admin/jobs/job-1/applications?dir=desc&amp;sort=createdAt"`)
		assert.Contains(t, body, `href="/admin/jobs/job-1/applications?dir=desc&amp;sort=score"`)
	})

	t.Run("missing job", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().GetJob(gomock.Any(), gomock.Any(), "gone").
			Return(model.Job{}, apperrors.NotFound("job not found"))

		rec := app.get("/admin/jobs/gone/applications")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_ExportApplications(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleAdmin)
	job := expectApplications(app)

	req := httptest.NewRequest(http.MethodGet, "/admin/jobs/job-1/applications.xlsx?sort=createdAt&dir=asc", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := app.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+export.Filename(job)+`"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestRouter_EditJob(t *testing.T) {
	job := testutil.NewJob("job-1").WithTitle("Platform Engineer").
		WithKeywords(model.Keyword{Term: "go", Weight: 2}, model.Keyword{Term: "k8s", Weight: 1}).
		WithCapacity(30, 4).Build()
	job.Requirements = []string{"Go", "Linux"}

	t.Run("form is prefilled", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().GetJob(gomock.Any(), gomock.Any(), "job-1").Return(job, nil)

		rec := app.get("/admin/jobs/job-1/edit")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `action="/admin/jobs/job-1/edit"`)
		assert.Contains(t, body, `value="Platform Engineer"`)
		assert.Contains(t, body, `value="go:2, k8s"`)
		assert.Contains(t, body, `value="30"`)
		assert.Contains(t, body, "Save changes")
	})

	t.Run("saved in three calls", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		gomock.InOrder(
			app.backend.EXPECT().UpdateJob(gomock.Any(), gomock.Any(), "job-1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ domainauth.Credential, _ string, d model.JobDetails) (model.Job, error) {
					assert.Equal(t, "Staff Engineer", d.Title)
					assert.Equal(t, []string{"Go"}, d.Requirements)
					assert.False(t, d.IsActive)
					return job, nil
				}),
			app.backend.EXPECT().AddKeywords(gomock.Any(), gomock.Any(), "job-1",
				[]model.Keyword{{Term: "go", Weight: 3}}).Return(job, nil),
			app.backend.EXPECT().SetJobLimit(gomock.Any(), gomock.Any(), "job-1", 10).Return(job, nil),
		)

		rec := app.postForm("/admin/jobs/job-1/edit", url.Values{
			"title":            {"Staff Engineer"},
			"description":      {"Lead the platform."},
			"requirements":     {"Go"},
			"keywords":         {"go:3"},
			"max_applications": {"10"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin?updated=job-1", rec.Header().Get("Location"))
	})

	t.Run("invalid form is re-rendered for the same job", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)

		rec := app.postForm("/admin/jobs/job-1/edit", url.Values{"description": {"d"}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Title is required.")
		assert.Contains(t, rec.Body.String(), `action="/admin/jobs/job-1/edit"`)
	})

	t.Run("candidates are turned away", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleCandidate)

		rec := app.get("/admin/jobs/job-1/edit")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
	})
}

func TestRouter_UpdateScore(t *testing.T) {
	t.Run("overridden", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().UpdateScore(gomock.Any(), gomock.Any(), "a2", 87.5).
			Return(model.Application{ID: "a2", Score: 87.5}, nil)

		rec := app.postForm("/admin/applications/a2/score", url.Values{"score": {"87.5"}, "job_id": {"job-1"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/jobs/job-1/applications?scored=1", rec.Header().Get("Location"))
	})

	t.Run("out of range never reaches the backend", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)

		rec := app.postForm("/admin/applications/a2/score", url.Values{"score": {"140"}, "job_id": {"job-1"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Score must be between 0 and 100.")
	})
}

func TestRouter_ShortlistPage(t *testing.T) {
	entries := []model.ShortlistEntry{
		{ID: "f1", ApplicationID: "a1", ManuallySelected: true, Application: &model.Application{
			ID: "a1", Candidate: model.Candidate{Email: "cora@example.com"},
			Job: model.JobRef{ID: "job-1", Title: "SRE"}, Score: 91,
		}},
		{ID: "f2", ApplicationID: "a2"},
	}

	t.Run("lists entries", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().ListShortlist(gomock.Any(), gomock.Any()).Return(entries, nil)

		rec := app.get("/admin/shortlist")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "cora@example.com")
		assert.Contains(t, body, `href="/admin/jobs/job-1/applications"`)
		assert.Contains(t, body, "Application a2")
		assert.Contains(t, body, `href="/admin/shortlist.xlsx"`)
	})

	t.Run("export", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().ListShortlist(gomock.Any(), gomock.Any()).Return(entries, nil)

		rec := app.get("/admin/shortlist.xlsx")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="`+export.ShortlistFilename+`"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	})

	t.Run("empty", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)
		app.backend.EXPECT().ListShortlist(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := app.get("/admin/shortlist")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Nobody is shortlisted yet.")
	})
}

func TestRouter_Shortlist(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleAdmin)
	app.backend.EXPECT().Shortlist(gomock.Any(), gomock.Any(), "a2").
		Return(model.ShortlistEntry{ID: "s1", ApplicationID: "a2", ManuallySelected: true}, nil)

	rec := app.postForm("/admin/applications/a2/shortlist", url.Values{"job_id": {"job-1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/jobs/job-1/applications?shortlisted=1", rec.Header().Get("Location"))
}

func TestRouter_CandidateJobs(t *testing.T) {
	app := newSignedInApp(t, domainauth.RoleCandidate)
	app.backend.EXPECT().ListOpenJobs(gomock.Any(), gomock.Any()).
		Return([]model.Job{testutil.NewJob("job-1").WithTitle("Platform Engineer").Build()}, nil)

	rec := app.get("/candidate?applied=job-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/candidate/jobs/job-1"`)
	assert.Contains(t, rec.Body.String(), "Your application was submitted.")
}

func TestRouter_JobBoardIsPublic(t *testing.T) {
	tests := []struct {
		name     string
		app      func(t *testing.T) *testApp
		wantCred bool
		wantText string
	}{
		{
			name:     "anonymous",
			app:      func(t *testing.T) *testApp { return newTestApp(t, testAppOptions{}) },
			wantText: "Sign in to apply",
		},
		{
			name:     "admin",
			app:      func(t *testing.T) *testApp { return newSignedInApp(t, domainauth.RoleAdmin) },
			wantCred: true,
			wantText: "Only candidate accounts can apply.",
		},
		{
			name:     "candidate",
			app:      func(t *testing.T) *testApp { return newSignedInApp(t, domainauth.RoleCandidate) },
			wantCred: true,
			wantText: `action="/candidate/jobs/job-1/apply"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := tt.app(t)
			cred := gomock.Any()
			if !tt.wantCred {
				cred = gomock.Eq(domainauth.Credential(""))
			}
			job := testutil.NewJob("job-1").WithTitle("Platform Engineer").Build()
			app.backend.EXPECT().ListOpenJobs(gomock.Any(), cred).Return([]model.Job{job}, nil)
			app.backend.EXPECT().GetOpenJob(gomock.Any(), cred, "job-1").Return(job, nil)

			rec := app.get("/candidate")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `href="/candidate/jobs/job-1"`)

			rec = app.get("/candidate/jobs/job-1")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "Platform Engineer")
			assert.Contains(t, rec.Body.String(), tt.wantText)
		})
	}
}

// cvRequest builds a multipart apply request carrying the CSRF form field.
func cvRequest(t *testing.T, jobID, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField(DefaultCSRFCookieName, testCSRFToken))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="cv"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/candidate/jobs/"+jobID+"/apply", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	return req
}

func TestRouter_CandidateApply(t *testing.T) {
	pdf := []byte("%PDF-1.4 resume")

	t.Run("submitted", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleCandidate)
		app.backend.EXPECT().Apply(gomock.Any(), app.store.Stored(), "job-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domainauth.Credential, _ string, cv ports.CVUpload) (model.Application, error) {
				got, err := io.ReadAll(cv.Body)
				require.NoError(t, err)
				assert.Equal(t, pdf, got)
				assert.Equal(t, "resume.pdf", cv.Filename)
				assert.Equal(t, "application/pdf", cv.ContentType)
				return testutil.NewApplication("a9", "job-1", "cora@example.com", 72, 0), nil
			})

		rec := app.serve(cvRequest(t, "job-1", "resume.pdf", "application/pdf", pdf))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/candidate?applied=job-1", rec.Header().Get("Location"))
	})

	t.Run("not a pdf", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleCandidate)
		app.backend.EXPECT().GetOpenJob(gomock.Any(), gomock.Any(), "job-1").
			Return(testutil.NewJob("job-1").Build(), nil)

		rec := app.serve(cvRequest(t, "job-1", "resume.docx", "application/msword", []byte("doc")))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "Only PDF files are accepted.")
	})

	t.Run("closed job", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleCandidate)
		app.backend.EXPECT().Apply(gomock.Any(), gomock.Any(), "job-1", gomock.Any()).
			Return(model.Application{}, apperrors.Validation("This job has reached its application limit."))
		app.backend.EXPECT().GetOpenJob(gomock.Any(), gomock.Any(), "job-1").
			Return(testutil.NewJob("job-1").WithCapacity(1, 1).Build(), nil)

		rec := app.serve(cvRequest(t, "job-1", "resume.pdf", "application/pdf", pdf))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "This job has reached its application limit.")
	})

	t.Run("anonymous is sent to login and back to the job", func(t *testing.T) {
		app := newTestApp(t, testAppOptions{})

		req := cvRequest(t, "job-1", "resume.pdf", "application/pdf", pdf)
		req.Header.Set("Referer", "http://localhost:3000/candidate/jobs/job-1")
		rec := app.serve(req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?redirect_uri=%2Fcandidate%2Fjobs%2Fjob-1", rec.Header().Get("Location"))
	})

	t.Run("admin cannot apply", func(t *testing.T) {
		app := newSignedInApp(t, domainauth.RoleAdmin)

		rec := app.serve(cvRequest(t, "job-1", "resume.pdf", "application/pdf", pdf))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))
	})
}
