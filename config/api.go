package config

import (
	"strings"
	"time"
)

// APIConfig points the client at the recruitment backend.
type APIConfig struct {
	// BaseURL is the backend API root; auth and recruitment paths are appended to it.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// ErrorMessagePath is a JMESPath expression selecting the human-readable
	// message from an error response body.
	ErrorMessagePath string `env:"ERROR_MESSAGE_PATH" envDefault:"message"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = "http://localhost:5000/api"
	}
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
	if strings.TrimSpace(a.ErrorMessagePath) == "" {
		a.ErrorMessagePath = "message"
	}
}
