package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTokenShape(t *testing.T) {
	assert.True(t, IsValidTokenShape("a.b.c"))
	assert.False(t, IsValidTokenShape("a.b"))
	assert.False(t, IsValidTokenShape(""))
	assert.False(t, IsValidTokenShape("a.b.c.d"))
}

func TestSessionValid(t *testing.T) {
	assert.True(t, Session{AccessToken: "a.b.c", RefreshToken: "d.e.f", Username: "rivera"}.Valid())
	assert.False(t, Session{AccessToken: "a.b.c", RefreshToken: "d.e.f"}.Valid())
	assert.False(t, Session{AccessToken: "broken", RefreshToken: "d.e.f", Username: "rivera"}.Valid())
	assert.False(t, Session{}.Valid())
}

// testBackend is a scriptable stand-in for the API with per-endpoint hit
// counters.
type testBackend struct {
	profileHits atomic.Int64
	refreshHits atomic.Int64
	logoutHits  atomic.Int64

	profileStatus int
	profileDelay  time.Duration
	refreshStatus int

	server *httptest.Server
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{profileStatus: http.StatusOK, refreshStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(LoginResult{
			AccessToken:  "h.p.s",
			RefreshToken: "x.y.z",
			Username:     "rivera",
		})
	})
	mux.HandleFunc("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		b.profileHits.Add(1)
		if b.profileDelay > 0 {
			time.Sleep(b.profileDelay)
		}
		if b.profileStatus != http.StatusOK {
			w.WriteHeader(b.profileStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid or missing access token"})
			return
		}
		json.NewEncoder(w).Encode(Profile{Username: "rivera", Email: "rivera@club.gg"})
	})
	mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		b.refreshHits.Add(1)
		if b.refreshStatus != http.StatusOK {
			w.WriteHeader(b.refreshStatus)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid refresh token"})
			return
		}
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "n.e.w", RefreshToken: "n.e.w2"})
	})
	mux.HandleFunc("/api/logout", func(w http.ResponseWriter, r *http.Request) {
		b.logoutHits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *testBackend) manager(store TokenStore, opts ...ManagerOption) *Manager {
	return NewManager(New(b.server.URL), store, opts...)
}

func storedSession(t *testing.T, s Session) TokenStore {
	t.Helper()
	store := NewMemoryStore()
	require.NoError(t, store.Save(s))
	return store
}

func validSession() Session {
	return Session{AccessToken: "a.b.c", RefreshToken: "d.e.f", Username: "rivera"}
}

func TestCheckAuthStatus_MalformedSessionRepairsWithoutNetwork(t *testing.T) {
	backend := newTestBackend(t)
	store := storedSession(t, Session{AccessToken: "only-two.segments", RefreshToken: "d.e.f", Username: "rivera"})
	m := backend.manager(store)

	m.CheckAuthStatus(context.Background())

	assert.False(t, m.Authenticated())
	assert.False(t, m.Loading())
	assert.Zero(t, backend.profileHits.Load(), "malformed tokens must not reach the network")

	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, cleared)
}

func TestCheckAuthStatus_ProbeConfirmsSession(t *testing.T) {
	backend := newTestBackend(t)
	m := backend.manager(storedSession(t, validSession()))

	m.CheckAuthStatus(context.Background())

	assert.True(t, m.Authenticated())
	assert.Equal(t, "rivera", m.Username())
	assert.False(t, m.Loading())
	assert.EqualValues(t, 1, backend.profileHits.Load())
	assert.Zero(t, backend.refreshHits.Load())
}

func TestCheckAuthStatus_RejectedProbeGetsOneRefresh(t *testing.T) {
	backend := newTestBackend(t)
	backend.profileStatus = http.StatusUnauthorized
	m := backend.manager(storedSession(t, validSession()))

	m.CheckAuthStatus(context.Background())

	assert.True(t, m.Authenticated())
	assert.EqualValues(t, 1, backend.refreshHits.Load())
	assert.Equal(t, "n.e.w", m.AccessToken())
}

func TestCheckAuthStatus_RefreshFailureRepairs(t *testing.T) {
	backend := newTestBackend(t)
	backend.profileStatus = http.StatusUnauthorized
	backend.refreshStatus = http.StatusUnauthorized
	store := storedSession(t, validSession())
	m := backend.manager(store)

	m.CheckAuthStatus(context.Background())

	assert.False(t, m.Authenticated())
	assert.False(t, m.Loading())
	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, cleared)
}

func TestCheckAuthStatus_ProbeTimeoutTriggersRefresh(t *testing.T) {
	backend := newTestBackend(t)
	backend.profileDelay = 300 * time.Millisecond
	m := backend.manager(storedSession(t, validSession()), WithProbeTimeout(50*time.Millisecond))

	m.CheckAuthStatus(context.Background())

	assert.True(t, m.Authenticated())
	assert.EqualValues(t, 1, backend.refreshHits.Load())
}

func TestLogin_SuccessStoresSession(t *testing.T) {
	backend := newTestBackend(t)
	store := NewMemoryStore()
	m := backend.manager(store)

	require.NoError(t, m.Login(context.Background(), "rivera@club.gg", "secret123"))

	assert.True(t, m.Authenticated())
	assert.Equal(t, "rivera", m.Username())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "h.p.s", persisted.AccessToken)
}

func TestLogin_FailureKeepsServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "credenciales inválidas"})
	}))
	t.Cleanup(server.Close)

	m := NewManager(New(server.URL), NewMemoryStore())
	err := m.Login(context.Background(), "rivera@club.gg", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "credenciales inválidas", apiErr.Message)
	assert.False(t, m.Authenticated())
}

func TestLogin_NetworkErrorIsConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listening any more

	m := NewManager(New(server.URL), NewMemoryStore())
	err := m.Login(context.Background(), "rivera@club.gg", "secret123")

	assert.ErrorIs(t, err, ErrConnection)
	assert.False(t, m.Authenticated())
}

func TestLogout_ClearsEvenWhenServerUnreachable(t *testing.T) {
	backend := newTestBackend(t)
	store := NewMemoryStore()
	m := backend.manager(store)
	require.NoError(t, m.Login(context.Background(), "rivera@club.gg", "secret123"))

	backend.server.Close()
	m.Logout(context.Background())

	assert.False(t, m.Authenticated())
	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, cleared)
}

func TestLogout_SkipsRequestForMalformedToken(t *testing.T) {
	backend := newTestBackend(t)
	m := backend.manager(NewMemoryStore())
	m.mu.Lock()
	m.session = Session{AccessToken: "garbage", RefreshToken: "d.e.f", Username: "rivera"}
	m.mu.Unlock()

	m.Logout(context.Background())

	assert.Zero(t, backend.logoutHits.Load())
	assert.False(t, m.Authenticated())
}

// A second login must cancel the first login's renewal timer. With the
// refresh endpoint failing, a fired timer refreshes exactly once and then
// logs out, so two stacked timers would show up as two refresh calls.
func TestSecondLoginCancelsFirstRefreshTimer(t *testing.T) {
	backend := newTestBackend(t)
	backend.refreshStatus = http.StatusUnauthorized
	m := backend.manager(NewMemoryStore(), WithAccessTTL(200*time.Millisecond))

	require.NoError(t, m.Login(context.Background(), "rivera@club.gg", "secret123"))
	require.NoError(t, m.Login(context.Background(), "rivera@club.gg", "secret123"))

	time.Sleep(500 * time.Millisecond)

	assert.EqualValues(t, 1, backend.refreshHits.Load())
}

func TestRenewalTimerRearmsAfterSuccessfulRefresh(t *testing.T) {
	backend := newTestBackend(t)
	m := backend.manager(NewMemoryStore(), WithAccessTTL(100*time.Millisecond))

	require.NoError(t, m.Login(context.Background(), "rivera@club.gg", "secret123"))
	time.Sleep(350 * time.Millisecond)
	m.Logout(context.Background())

	assert.GreaterOrEqual(t, backend.refreshHits.Load(), int64(2), "renewal must re-arm itself")
}

func TestAutoRepairIsIdempotent(t *testing.T) {
	backend := newTestBackend(t)
	store := storedSession(t, validSession())
	m := backend.manager(store)

	m.autoRepair()
	m.autoRepair()

	assert.False(t, m.Authenticated())
	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, cleared)
}
