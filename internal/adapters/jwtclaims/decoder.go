// Package jwtclaims decodes the payload of Auth API credentials.
//
// Decoding is advisory only: the signature is never verified here because the
// client does not hold the signing key. The backend re-validates every request.
package jwtclaims

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

var _ ports.TokenDecoder = (*Decoder)(nil)

// payload mirrors the claims the Auth API puts in its tokens.
// The user id travels as "id"; "sub" is accepted as a fallback.
type payload struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Decoder implements ports.TokenDecoder using golang-jwt's unverified parser.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder constructs a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode extracts claims from cred. Expiry is not judged here; callers compare
// Claims.ExpiresAt against their own clock.
func (d *Decoder) Decode(cred domainauth.Credential) (domainauth.Claims, error) {
	raw := strings.TrimSpace(string(cred))
	if raw == "" {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeMalformedCredential, "credential is empty")
	}

	var p payload
	if _, _, err := d.parser.ParseUnverified(raw, &p); err != nil {
		return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedCredential, "credential could not be decoded")
	}

	subject := p.UserID
	if subject == "" {
		subject = p.Subject
	}
	if subject == "" {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeMalformedCredential, "credential has no subject")
	}
	if p.ExpiresAt == nil {
		return domainauth.Claims{}, apperrors.New(apperrors.ErrCodeMalformedCredential, "credential has no expiry")
	}
	role, err := domainauth.ParseRole(p.Role)
	if err != nil {
		return domainauth.Claims{}, apperrors.Wrap(err, apperrors.ErrCodeMalformedCredential, "credential has an unknown role")
	}

	return domainauth.Claims{
		Subject:   subject,
		Email:     p.Email,
		Role:      role,
		ExpiresAt: p.ExpiresAt.Time,
	}, nil
}
