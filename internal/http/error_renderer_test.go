package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureRenderer records what RenderError hands to the page renderer.
type captureRenderer struct {
	called bool
	status int
	data   map[string]any
}

func (c *captureRenderer) render(_ http.ResponseWriter, _ *http.Request, status int, data map[string]any) {
	c.called = true
	c.status = status
	c.data = data
}

func renderErrorForTest(t *testing.T, opts ErrorOpts) (*captureRenderer, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := &captureRenderer{}
	opts.W = rec
	opts.R = httptest.NewRequest(http.MethodPost, "/admin/jobs", nil)
	opts.Renderer = c.render
	RenderError(opts)
	require.True(t, c.called, "renderer should be called")
	return c, rec
}

func TestRenderError_FieldErrors(t *testing.T) {
	c, _ := renderErrorForTest(t, ErrorOpts{
		FieldErrors: map[string]string{"title": "Title is required."},
		PageMeta:    PageMeta{Title: "New job", CurrentPage: PageJobForm},
		Data:        map[string]any{"Form": jobFormValues{Company: "Acme"}},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, c.status)
	assert.Equal(t, map[string]string{"title": "Title is required."}, c.data["Errors"])
	assert.Equal(t, errMsgFixBelow, c.data["ErrorMessage"])
	assert.Equal(t, jobFormValues{Company: "Acme"}, c.data["Form"], "form values survive the re-render")
	assert.Equal(t, PageJobForm, c.data["CurrentPage"])
}

func TestRenderError_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        apperrors.Validation("Job is closed for applications."),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Job is closed for applications.",
		},
		{
			name:       "forbidden without message",
			err:        apperrors.New(apperrors.ErrCodeForbidden, ""),
			wantStatus: http.StatusForbidden,
			wantMsg:    "You don't have permission to do that.",
		},
		{
			name:       "network failure",
			err:        apperrors.Wrap(errors.New("dial tcp: refused"), apperrors.ErrCodeNetworkFailure, ""),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Unable to reach the server. Please try again.",
		},
		{
			name:       "upstream",
			err:        apperrors.New(apperrors.ErrCodeUpstream, ""),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "The recruitment service had a problem. Please try again.",
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("list jobs: %w", context.DeadlineExceeded),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Request timed out. Please try again.",
		},
		{
			name:       "canceled",
			err:        context.Canceled,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Request was canceled.",
		},
		{
			name:       "unknown error hides details",
			err:        errors.New("pq: secret internals"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "An error occurred. Please try again.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := renderErrorForTest(t, ErrorOpts{Err: tt.err})
			assert.Equal(t, tt.wantStatus, c.status)
			assert.Equal(t, true, c.data["Error"])
			assert.Equal(t, tt.wantMsg, c.data["ErrorMessage"])
		})
	}
}

func TestRenderError_FieldScopedValidation(t *testing.T) {
	c, _ := renderErrorForTest(t, ErrorOpts{
		Err: apperrors.ValidationField("max_applications", "Max applications cannot be negative."),
	})

	assert.Equal(t, map[string]string{"max_applications": "Max applications cannot be negative."}, c.data["Errors"])
	assert.Equal(t, errMsgFixBelow, c.data["ErrorMessage"])
}

func TestRenderError_StatusOverrideAndToast(t *testing.T) {
	c, rec := renderErrorForTest(t, ErrorOpts{
		Err:        apperrors.Validation("Title is taken."),
		StatusCode: http.StatusConflict,
		ShowToast:  true,
	})

	assert.Equal(t, http.StatusConflict, c.status)
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Title is taken.")
}

func TestRenderError_NoRenderer(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(ErrorOpts{W: rec, R: httptest.NewRequest(http.MethodGet, "/", nil), Err: errors.New("x")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProcessError_Nil(t *testing.T) {
	var fieldErrors map[string]string
	assert.Empty(t, processError(nil, &fieldErrors))
	assert.Nil(t, fieldErrors)
}
