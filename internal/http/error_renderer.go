package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
)

const errMsgFixBelow = "Please fix the errors below."

// ErrorRenderer renders page data with a status code.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, status int, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional when only FieldErrors are set)
	Err error
	// FieldErrors contains field-level validation errors (field name → message)
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data preserves form values and other page data across the re-render.
	Data map[string]any
	// StatusCode overrides the status derived from Err.
	StatusCode int
	// ShowToast also sends the message as an htmx toast.
	ShowToast bool
}

// RenderError re-renders a page with a user-facing error and any field errors.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	fieldErrors := opts.FieldErrors
	general := processError(opts.Err, &fieldErrors)
	builder.WithFieldErrors(fieldErrors)
	switch {
	case general != "":
		builder.WithError(general)
	case len(fieldErrors) > 0:
		builder.WithError(errMsgFixBelow)
	}

	if opts.ShowToast && general != "" {
		HTMX(opts.W).Toast(general, "error")
	}

	status := opts.StatusCode
	if status == 0 {
		status = http.StatusOK
		if opts.Err != nil {
			status = StatusForError(opts.Err)
		} else if len(fieldErrors) > 0 {
			status = http.StatusUnprocessableEntity
		}
	}
	opts.Renderer(opts.W, opts.R, status, builder.Build())
}

// processError returns the message to show for err, moving field-scoped
// validation errors into fieldErrors. Returns "" if err is nil.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || apperrors.GetCode(err) == apperrors.ErrCodeTimeout {
		return "Request timed out. Please try again."
	}
	if errors.Is(err, context.Canceled) {
		return "Request was canceled."
	}

	if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
		if *fieldErrors == nil {
			*fieldErrors = make(map[string]string)
		}
		(*fieldErrors)[field] = apperrors.UserMessage(err, "This field has an invalid value.")
		return errMsgFixBelow
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeUnauthorized, apperrors.ErrCodeNotFound:
		return apperrors.UserMessage(err, "The request could not be completed.")
	case apperrors.ErrCodeForbidden:
		return apperrors.UserMessage(err, "You don't have permission to do that.")
	case apperrors.ErrCodeNetworkFailure:
		return apperrors.UserMessage(err, "Unable to reach the server. Please try again.")
	case apperrors.ErrCodeUpstream:
		return apperrors.UserMessage(err, "The recruitment service had a problem. Please try again.")
	default:
		return "An error occurred. Please try again."
	}
}

// handleServiceError answers a failed recruitment call. An expired session is
// sent back to login with the current page as redirect_uri; a missing resource
// gets the not-found page; anything else re-renders the page with the message.
func (h *UIHandlers) handleServiceError(w http.ResponseWriter, r *http.Request, err error, opts ErrorOpts) {
	switch {
	case apperrors.IsUnauthorized(err):
		redirectWithStatus(w, r, LoginURL(h.loginPath(), redirectPathForRequest(r)))
		return
	case apperrors.IsNotFound(err):
		h.NotFound(w, r)
		return
	}
	opts.W, opts.R, opts.Err = w, r, err
	if opts.Renderer == nil {
		opts.Renderer = h.renderPage
	}
	RenderError(opts)
}
