package backendapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

var _ ports.AuthAPI = (*AuthClient)(nil)

// AuthClient implements ports.AuthAPI.
type AuthClient struct {
	c *Client
}

// NewAuthClient wraps c for the /auth endpoints.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login calls POST /auth/login.
func (a *AuthClient) Login(ctx context.Context, in ports.LoginInput) (domainauth.Credential, error) {
	return a.issue(ctx, "login", in)
}

// Signup calls POST /auth/signup.
func (a *AuthClient) Signup(ctx context.Context, in ports.SignupInput) (domainauth.Credential, error) {
	return a.issue(ctx, "signup", in)
}

func (a *AuthClient) issue(ctx context.Context, action string, payload any) (domainauth.Credential, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return "", err
	}
	status, respBody, err := a.c.do(ctx, request{
		method:      http.MethodPost,
		url:         a.c.endpoint("auth", action),
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}

	if !isSuccess(status) {
		return "", a.classify(status, respBody)
	}

	var tr tokenResponse
	if err := decodeJSON(respBody, &tr); err != nil {
		return "", err
	}
	token := strings.TrimSpace(tr.Token)
	if token == "" {
		return "", apperrors.New(apperrors.ErrCodeUpstream, "server response did not include a token")
	}
	return domainauth.Credential(token), nil
}

// classify maps a non-2xx auth response to an AppError carrying the server's message.
// Client errors are rejections of the submitted credentials or fields; server errors are upstream failures.
func (a *AuthClient) classify(status int, body []byte) error {
	msg := a.c.errorMessage(body)
	cause := fmt.Errorf("auth api returned status %d", status)
	if status >= http.StatusInternalServerError {
		a.c.logger.Warn("auth api server error", "status", status, "message", msg)
		return &apperrors.AppError{Code: apperrors.ErrCodeUpstream, Message: msg, Cause: cause}
	}
	return &apperrors.AppError{Code: apperrors.ErrCodeInvalidCredentials, Message: msg, Cause: cause}
}
