// Package backendapi implements the Auth API and Recruitment API ports over HTTP.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout          = 15 * time.Second
	defaultErrorMessagePath = "message"
	maxErrorBodyBytes       = 64 << 10
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:5000/api.
	BaseURL string
	// Timeout bounds each request when HTTPClient is nil.
	Timeout time.Duration
	// ErrorMessagePath is a JMESPath expression locating the human message in error bodies.
	ErrorMessagePath string
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is the shared HTTP plumbing behind AuthClient and RecruitmentClient.
type Client struct {
	base    *url.URL
	http    *http.Client
	msgPath string
	logger  *slog.Logger
}

// NewClient validates opts and constructs a Client.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, fmt.Errorf("backend api: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("backend api: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend api: base URL must be http or https, got %q", base.Scheme)
	}

	msgPath := strings.TrimSpace(opts.ErrorMessagePath)
	if msgPath == "" {
		msgPath = defaultErrorMessagePath
	}
	if _, err := jmespath.Compile(msgPath); err != nil {
		return nil, fmt.Errorf("backend api: invalid error message path %q: %w", msgPath, err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("backend api: cookie jar: %w", err)
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{base: base, http: hc, msgPath: msgPath, logger: logger.With("component", "backendapi")}, nil
}

// endpoint joins path segments onto the base URL, escaping each dynamic segment.
func (c *Client) endpoint(segments ...string) string {
	u := *c.base
	raw := make([]string, 0, len(segments))
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		raw = append(raw, s)
		escaped = append(escaped, url.PathEscape(s))
	}
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.Join(raw, "/")
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	return u.String()
}

// clientFor returns an HTTP client that sends cred as a bearer token.
// An empty credential gets the plain client.
func (c *Client) clientFor(cred domainauth.Credential) *http.Client {
	if cred == "" {
		return c.http
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(cred), TokenType: "Bearer"})
	return &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: base},
		Jar:       c.http.Jar,
		Timeout:   c.http.Timeout,
	}
}

// request describes one API call.
type request struct {
	method      string
	url         string
	cred        domainauth.Credential
	body        io.Reader
	contentType string
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do executes req and returns the response status and body.
// Transport failures are mapped to network-failure errors; HTTP status is left to the caller.
func (c *Client) do(ctx context.Context, req request) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, req.body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	resp, err := c.clientFor(req.cred).Do(httpReq)
	if err != nil {
		return 0, nil, apperrors.MapTransportError(err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("close response body", "error", cerr)
		}
	}()

	var r io.Reader = resp.Body
	if resp.StatusCode >= http.StatusBadRequest {
		r = io.LimitReader(resp.Body, maxErrorBodyBytes)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return resp.StatusCode, nil, apperrors.MapTransportError(err)
	}
	return resp.StatusCode, body, nil
}

// errorMessage extracts the human message from an error body, or "" when absent.
func (c *Client) errorMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.msgPath, data)
	if err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func decodeJSON(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "unexpected response from server")
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
