package errors

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// MapTransportError maps failures of an outbound HTTP call to AppError instances:
// - context.DeadlineExceeded → Timeout
// - context.Canceled → Canceled
// - *url.Error / net.Error → NetworkFailure
//
// Any other error is returned unchanged.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "The server took too long to respond. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &AppError{
			Code:    ErrCodeNetworkFailure,
			Message: "Unable to reach the server. Please check your connection and try again.",
			Cause:   err,
		}
	}

	return err
}
