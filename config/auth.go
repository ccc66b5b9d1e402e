package config

import "strings"

// AuthConfig holds the paths the route guard redirects to.
type AuthConfig struct {
	// LoginPath receives unauthenticated visitors, with redirect_uri set to their origin.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`

	// UnauthorizedPath receives authenticated visitors lacking the required role.
	UnauthorizedPath string `env:"UNAUTHORIZED_PATH" envDefault:"/unauthorized"`
}

// Sanitize keeps both paths rooted so redirects stay on this origin.
func (a *AuthConfig) Sanitize() {
	a.LoginPath = rootedPath(a.LoginPath, "/login")
	a.UnauthorizedPath = rootedPath(a.UnauthorizedPath, "/unauthorized")
}

func rootedPath(p, fallback string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return fallback
	}
	return p
}
