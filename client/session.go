package client

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultAccessTTL    = 15 * time.Minute
	defaultProbeTimeout = 10 * time.Second

	// Renewal fires this long before the access token expires: 13 minutes
	// into a 15-minute lifetime.
	refreshLead = 2 * time.Minute
)

// Manager owns the session lifecycle. It is the single holder of the token
// pair: login populates it, the renewal timer keeps it fresh, and auto-repair
// clears it whenever it cannot be trusted. All failure paths land in exactly
// one of two states: authenticated with a user, or fully cleared.
type Manager struct {
	api    *Client
	store  TokenStore
	logger *slog.Logger

	accessTTL    time.Duration
	probeTimeout time.Duration

	mu      sync.Mutex
	session Session
	loading bool
	timer   *time.Timer
}

type ManagerOption func(*Manager)

// WithAccessTTL overrides the assumed access-token lifetime the renewal
// timer is derived from.
func WithAccessTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.accessTTL = ttl }
}

func WithProbeTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) { m.probeTimeout = d }
}

func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) { m.logger = logger }
}

func NewManager(api *Client, store TokenStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		api:          api,
		store:        store,
		logger:       slog.Default(),
		accessTTL:    defaultAccessTTL,
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Valid()
}

func (m *Manager) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Username
}

func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.AccessToken
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Login authenticates and, on success, stores the new session and arms the
// renewal timer. Failures mutate nothing: a server rejection comes back as an
// *APIError carrying the server's message, a transport failure as
// ErrConnection.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		Username:     res.Username,
	}
	if err := m.store.Save(m.session); err != nil {
		m.logger.Warn("failed to persist session", slog.Any("error", err))
	}
	m.scheduleRefreshLocked()
	return nil
}

// Register creates the account and immediately logs in with the same
// credentials.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	if err := m.api.Register(ctx, username, email, password); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// CheckAuthStatus restores the session at startup. Malformed or incomplete
// stored credentials are repaired without touching the network. Otherwise the
// profile endpoint is probed under a bounded timeout; a rejected probe gets
// exactly one refresh attempt before the session is repaired. Whatever path
// is taken, the loading flag is cleared on exit.
func (m *Manager) CheckAuthStatus(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	stored, err := m.store.Load()
	if err != nil || !stored.Valid() {
		m.autoRepair()
		return
	}

	m.mu.Lock()
	m.session = stored
	m.mu.Unlock()

	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()

	if _, err := m.api.Profile(probeCtx, stored.AccessToken); err == nil {
		m.mu.Lock()
		m.scheduleRefreshLocked()
		m.mu.Unlock()
		return
	}

	// The probe failed (401, timeout, transport, anything): one refresh
	// attempt decides whether the session survives.
	if err := m.RefreshAccessToken(ctx); err != nil {
		m.autoRepair()
		return
	}
	m.mu.Lock()
	m.scheduleRefreshLocked()
	m.mu.Unlock()
}

// RefreshAccessToken exchanges the stored refresh token for a new pair. On
// success both tokens are replaced atomically; on failure nothing changes and
// the caller decides what to do with the session.
func (m *Manager) RefreshAccessToken(ctx context.Context) error {
	m.mu.Lock()
	refreshToken := m.session.RefreshToken
	m.mu.Unlock()

	pair, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.AccessToken = pair.AccessToken
	m.session.RefreshToken = pair.RefreshToken
	if err := m.store.Save(m.session); err != nil {
		m.logger.Warn("failed to persist refreshed session", slog.Any("error", err))
	}
	return nil
}

// Logout notifies the server best-effort (only when the access token even
// looks like a token) and then clears all local state no matter what the
// network said.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	access := m.session.AccessToken
	m.mu.Unlock()

	defer m.autoRepair()

	if IsValidTokenShape(access) {
		if err := m.api.Logout(ctx, access); err != nil {
			m.logger.Debug("logout request failed", slog.Any("error", err))
		}
	}
}

// scheduleRefreshLocked arms the single renewal timer, cancelling any timer
// already pending so re-login never stacks a second one. Callers hold m.mu.
func (m *Manager) scheduleRefreshLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	delay := m.accessTTL - refreshLead
	if delay <= 0 {
		delay = m.accessTTL / 2
	}
	m.timer = time.AfterFunc(delay, m.renew)
}

// renew is the timer callback: refresh, and either re-arm or log out. This is
// the only self-perpetuating task in the client.
func (m *Manager) renew() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := m.RefreshAccessToken(ctx); err != nil {
		m.logger.Warn("silent refresh failed, logging out", slog.Any("error", err))
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.scheduleRefreshLocked()
	m.mu.Unlock()
}

// autoRepair is the single recovery path for an inconsistent or unverifiable
// session: cancel the renewal timer, drop every session field, wipe the
// store. Safe to call any number of times.
func (m *Manager) autoRepair() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.session = Session{}
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear session store", slog.Any("error", err))
	}
}
