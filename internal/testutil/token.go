package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
)

// signingKey only exists so minted tokens have a well-formed signature segment.
// The client never verifies signatures.
var signingKey = []byte("recruitweb-test-signing-key")

// TokenClaims describe a credential minted for tests.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      domainauth.Role
	ExpiresAt time.Time
}

// MintToken returns an HS256 JWT carrying the same payload shape the Auth API issues.
func MintToken(t TestingTB, c TokenClaims) domainauth.Credential {
	t.Helper()

	claims := jwt.MapClaims{
		"id":    c.Subject,
		"email": c.Email,
		"role":  string(c.Role),
		"iat":   jwt.NewNumericDate(c.ExpiresAt.Add(-time.Hour)),
		"exp":   jwt.NewNumericDate(c.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return domainauth.Credential(signed)
}

// MintRawToken signs arbitrary claims, for malformed-payload cases.
func MintRawToken(t TestingTB, claims jwt.MapClaims) domainauth.Credential {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return domainauth.Credential(signed)
}

// CandidateToken mints a candidate credential expiring at exp.
func CandidateToken(t TestingTB, email string, exp time.Time) domainauth.Credential {
	t.Helper()
	return MintToken(t, TokenClaims{Subject: "cand-" + email, Email: email, Role: domainauth.RoleCandidate, ExpiresAt: exp})
}

// AdminToken mints an admin credential expiring at exp.
func AdminToken(t TestingTB, email string, exp time.Time) domainauth.Credential {
	t.Helper()
	return MintToken(t, TokenClaims{Subject: "admin-" + email, Email: email, Role: domainauth.RoleAdmin, ExpiresAt: exp})
}
