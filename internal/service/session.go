package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	apperrors "github.com/recruitdesk/recruit-web/internal/errors"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

const (
	loginFailedMessage        = "Login failed"
	registrationFailedMessage = "Registration failed"
	supersededMessage         = "A newer sign-in request replaced this one"

	// SessionExpiredNotice is shown when a session ends because its credential expired or was rejected.
	SessionExpiredNotice = "session expired, please log in again"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Result is the outcome of a login or registration attempt.
// API failures never escape as errors; they are reported here.
type Result struct {
	OK      bool
	Message string
	Code    apperrors.ErrorCode
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	API     ports.AuthAPI
	Store   ports.CredentialStore
	Decoder ports.TokenDecoder
	Logger  *slog.Logger
	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

// SessionManager owns the single session of this client instance.
//
// Every login, registration, logout and expiry takes a generation number when
// issued. A login or registration result is applied only if no newer one of
// those was issued while it was in flight. Restore is tracked separately by
// epoch, which only moves when the session actually changes hands (a
// successful sign-in, logout or expiry), so a failed sign-in never cancels a
// restore in progress. State is guarded by mu; API calls run outside it.
// storeMu serializes credential store access and is always taken before mu.
// Every write under storeMu leaves the store matching the in-memory session.
type SessionManager struct {
	api     ports.AuthAPI
	store   ports.CredentialStore
	decoder ports.TokenDecoder
	logger  *slog.Logger
	now     func() time.Time

	mu     sync.Mutex
	state  domainauth.Session
	claims domainauth.Claims
	gen    uint64
	epoch  uint64

	storeMu sync.Mutex
}

// NewSessionManager constructs a SessionManager in the unknown state.
func NewSessionManager(opts SessionManagerOptions) (*SessionManager, error) {
	if opts.API == nil {
		return nil, errors.New("AuthAPI is required")
	}
	if opts.Store == nil {
		return nil, errors.New("CredentialStore is required")
	}
	if opts.Decoder == nil {
		return nil, errors.New("TokenDecoder is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionManager{
		api:     opts.API,
		store:   opts.Store,
		decoder: opts.Decoder,
		logger:  logger.With("component", "session_manager"),
		now:     now,
		state:   domainauth.Session{Status: domainauth.StatusUnknown},
	}, nil
}

// MustNewSessionManager constructs a SessionManager and panics on error.
func MustNewSessionManager(opts SessionManagerOptions) *SessionManager {
	m, err := NewSessionManager(opts)
	if err != nil {
		//nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
		panic(fmt.Sprintf("failed to create SessionManager: %v", err))
	}
	return m
}

// Restore rebuilds the session from the credential store without contacting the Auth API.
// Malformed or expired credentials are purged. Restore never fails: any problem ends in
// the anonymous state. A sign-in, logout or expiry that completes first wins over it.
func (m *SessionManager) Restore(ctx context.Context) {
	var epoch uint64
	m.begin(func() {
		epoch = m.epoch
		m.state.Status = domainauth.StatusLoading
	})

	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	cred, claims, ok := m.loadStored(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return
	}
	if !ok {
		m.state = domainauth.Session{Status: domainauth.StatusAnonymous}
		m.claims = domainauth.Claims{}
		return
	}
	m.install(cred, claims)
	m.logger.Debug("session restored", "subject", claims.Subject, "role", claims.Role)
}

// loadStored reads and validates the stored credential, clearing it when unusable.
// Callers hold storeMu.
func (m *SessionManager) loadStored(ctx context.Context) (domainauth.Credential, domainauth.Claims, bool) {
	cred, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNoCredential):
		return "", domainauth.Claims{}, false
	case err != nil:
		m.logger.Warn("credential store read failed; continuing anonymous", "error", err)
		return "", domainauth.Claims{}, false
	}

	claims, err := m.decoder.Decode(cred)
	if err != nil {
		m.logger.Info("stored credential is malformed; purging", "error", err)
		m.clearStore(ctx)
		return "", domainauth.Claims{}, false
	}
	if claims.Expired(m.now()) {
		m.logger.Info("stored credential is expired; purging", "expired_at", claims.ExpiresAt)
		m.clearStore(ctx)
		return "", domainauth.Claims{}, false
	}
	return cred, claims, true
}

// Login authenticates with email and password.
func (m *SessionManager) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	attempt := uuid.NewString()
	log := m.logger.With("attempt_id", attempt, "action", "login")

	if res, ok := validateCredentials(email, password); !ok {
		log.Debug("login rejected by validation", "reason", res.Message)
		return res
	}

	gen := m.begin(nil)
	var res Result
	if cred, err := m.api.Login(ctx, ports.LoginInput{Email: email, Password: password}); err != nil {
		res = m.apiFailure(log, err, loginFailedMessage)
	} else {
		res = m.accept(ctx, log, gen, cred, loginFailedMessage)
	}
	if !res.OK {
		m.settleUnknown()
	}
	return res
}

// Register creates an account and signs in as it. An empty role registers a candidate.
func (m *SessionManager) Register(ctx context.Context, email, password string, role domainauth.Role) Result {
	email = strings.TrimSpace(email)
	attempt := uuid.NewString()
	log := m.logger.With("attempt_id", attempt, "action", "register")

	if res, ok := validateCredentials(email, password); !ok {
		log.Debug("registration rejected by validation", "reason", res.Message)
		return res
	}
	if role == "" {
		role = domainauth.RoleCandidate
	}
	if _, err := domainauth.ParseRole(string(role)); err != nil {
		return Result{Message: "Role must be admin or candidate", Code: apperrors.ErrCodeValidation}
	}

	gen := m.begin(nil)
	var res Result
	if cred, err := m.api.Signup(ctx, ports.SignupInput{Email: email, Password: password, Role: role}); err != nil {
		res = m.apiFailure(log, err, registrationFailedMessage)
	} else {
		res = m.accept(ctx, log, gen, cred, registrationFailedMessage)
	}
	if !res.OK {
		m.settleUnknown()
	}
	return res
}

// Logout clears the credential store and resets the session to anonymous.
// It never fails and supersedes any login or registration still in flight.
// Navigation after logout is up to the caller.
func (m *SessionManager) Logout(ctx context.Context) {
	m.begin(func() {
		m.epoch++
		m.state = domainauth.Session{Status: domainauth.StatusAnonymous}
		m.claims = domainauth.Claims{}
	})
	m.syncStore(ctx)
	m.logger.Debug("logged out")
}

// Expire ends the session because its credential is no longer accepted, leaving notice for the user.
func (m *SessionManager) Expire(ctx context.Context, notice string) {
	m.begin(func() {
		m.epoch++
		m.state = domainauth.Session{Status: domainauth.StatusAnonymous, Notice: notice}
		m.claims = domainauth.Claims{}
	})
	m.syncStore(ctx)
	m.logger.Info("session expired", "notice", notice)
}

// Current returns the session after applying check-time expiry: an authenticated
// session whose credential has expired is ended and its storage purged.
func (m *SessionManager) Current(ctx context.Context) domainauth.Session {
	m.mu.Lock()
	if !m.state.IsAuthenticated() || !m.claims.Expired(m.now()) {
		s := m.snapshotLocked()
		m.mu.Unlock()
		return s
	}
	m.gen++
	m.epoch++
	m.state = domainauth.Session{Status: domainauth.StatusAnonymous, Notice: SessionExpiredNotice}
	m.claims = domainauth.Claims{}
	s := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Info("credential expired at check time; purging")
	m.syncStore(ctx)
	return s
}

// IsAuthorized reports whether the current session may access a view requiring one of required.
func (m *SessionManager) IsAuthorized(ctx context.Context, required ...domainauth.Role) domainauth.Decision {
	return domainauth.Authorize(m.Current(ctx), required...)
}

// Snapshot returns a copy of the session as it is now, without expiry checks.
func (m *SessionManager) Snapshot() domainauth.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Credential returns the current credential, or "" when anonymous.
func (m *SessionManager) Credential() domainauth.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.IsAuthenticated() {
		return ""
	}
	return m.state.Credential
}

// ConsumeNotice returns and clears the pending user notice.
func (m *SessionManager) ConsumeNotice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.state.Notice
	m.state.Notice = ""
	return n
}

// begin issues a new generation and runs mutate (if any) under the lock.
func (m *SessionManager) begin(mutate func()) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if mutate != nil {
		mutate()
	}
	return m.gen
}

func (m *SessionManager) current(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen == gen
}

// install sets an authenticated session. Callers hold mu.
func (m *SessionManager) install(cred domainauth.Credential, claims domainauth.Claims) {
	identity := domainauth.IdentityFromClaims(claims)
	m.state = domainauth.Session{
		Credential: cred,
		Identity:   &identity,
		Status:     domainauth.StatusAuthenticated,
	}
	m.claims = claims
	m.epoch++
}

// settleUnknown moves a never-restored session to anonymous after a failed sign-in.
// A restore in progress is left to settle itself.
func (m *SessionManager) settleUnknown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Status == domainauth.StatusUnknown {
		m.state = domainauth.Session{Status: domainauth.StatusAnonymous}
	}
}

// syncStore makes the credential store match the in-memory session.
// Client disconnects do not interrupt it.
func (m *SessionManager) syncStore(ctx context.Context) {
	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	m.syncStoreLocked(ctx)
}

// syncStoreLocked is syncStore for callers already holding storeMu.
func (m *SessionManager) syncStoreLocked(ctx context.Context) {
	m.mu.Lock()
	cred, claims, authed := m.state.Credential, m.claims, m.state.IsAuthenticated()
	m.mu.Unlock()

	if !authed {
		m.clearStore(ctx)
		return
	}
	if err := m.store.Save(context.WithoutCancel(ctx), cred, claims); err != nil {
		m.logger.Warn("credential store write failed", "error", err)
	}
}

// clearStore empties the credential store. Failures are logged; the in-memory
// session is already anonymous.
func (m *SessionManager) clearStore(ctx context.Context) {
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("credential store clear failed", "error", err)
	}
}

// accept decodes, persists and installs a freshly issued credential if gen is still the latest.
func (m *SessionManager) accept(
	ctx context.Context,
	log *slog.Logger,
	gen uint64,
	cred domainauth.Credential,
	generic string,
) Result {
	claims, err := m.decoder.Decode(cred)
	if err != nil {
		log.Warn("issued credential could not be decoded", "error", err)
		return Result{Message: generic, Code: apperrors.ErrCodeMalformedCredential}
	}
	if claims.Expired(m.now()) {
		log.Warn("issued credential is already expired", "expired_at", claims.ExpiresAt)
		return Result{Message: generic, Code: apperrors.ErrCodeExpiredCredential}
	}

	m.storeMu.Lock()
	defer m.storeMu.Unlock()
	if !m.current(gen) {
		log.Info("discarding superseded result")
		return Result{Message: supersededMessage, Code: apperrors.ErrCodeSuperseded}
	}
	if err := m.store.Save(context.WithoutCancel(ctx), cred, claims); err != nil {
		log.Warn("credential store write failed; session will not survive restart", "error", err)
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		log.Info("discarding superseded result; restoring store")
		m.syncStoreLocked(ctx)
		return Result{Message: supersededMessage, Code: apperrors.ErrCodeSuperseded}
	}
	defer m.mu.Unlock()
	m.install(cred, claims)
	log.Info("session established", "subject", claims.Subject, "role", claims.Role)
	return Result{OK: true}
}

// apiFailure converts an Auth API error into a failure Result. The server's message is
// used when the API itself rejected the request; transport problems get the generic message.
func (m *SessionManager) apiFailure(log *slog.Logger, err error, generic string) Result {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	msg := generic
	if code == apperrors.ErrCodeInvalidCredentials || code == apperrors.ErrCodeUpstream {
		msg = apperrors.UserMessage(err, generic)
	}
	if apperrors.IsNetworkFailure(err) {
		code = apperrors.ErrCodeNetworkFailure
	}
	log.Info("auth api call failed", "code", code, "error", err)
	return Result{Message: msg, Code: code}
}

func (m *SessionManager) snapshotLocked() domainauth.Session {
	s := m.state
	if s.Identity != nil {
		id := *s.Identity
		s.Identity = &id
	}
	return s
}

func validateCredentials(email, password string) (Result, bool) {
	switch {
	case email == "":
		return Result{Message: "Email is required", Code: apperrors.ErrCodeValidation}, false
	case !emailPattern.MatchString(email):
		return Result{Message: "Email address is invalid", Code: apperrors.ErrCodeValidation}, false
	case password == "":
		return Result{Message: "Password is required", Code: apperrors.ErrCodeValidation}, false
	}
	return Result{}, true
}
