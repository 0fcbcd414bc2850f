package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ctlfx/console/internal/ids"
	"ctlfx/console/internal/upstream"
)

// Manager owns the session lifecycle: login creates and persists a
// session, Resolve rehydrates one from a browser token, and Destroy
// tears one down (logout or an upstream 401, whichever comes first).
type Manager struct {
	store     Store
	client    *upstream.Client
	secret    string
	ttl       time.Duration
	log       zerolog.Logger
	onDestroy func(sessionID string)
}

func NewManager(store Store, client *upstream.Client, secret string, ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		client: client,
		secret: secret,
		ttl:    ttl,
		log:    log,
	}
}

// OnDestroy registers a hook invoked whenever a session is destroyed,
// used to drop the session's view state.
func (m *Manager) OnDestroy(fn func(sessionID string)) {
	m.onDestroy = fn
}

// Login authenticates against the upstream. Nothing is persisted unless
// the upstream returned both a token and a user.
func (m *Manager) Login(ctx context.Context, email, password string) (string, Session, error) {
	result, err := m.client.Login(ctx, email, password)
	if err != nil {
		return "", Session{}, err
	}

	now := time.Now()
	sess := Session{
		ID:        ids.New(),
		Token:     result.Token,
		Identity:  result.Identity,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return "", Session{}, err
	}

	signed, err := SignToken(m.secret, sess.ID, m.ttl)
	if err != nil {
		// roll back so no orphaned session lingers
		_ = m.store.Delete(ctx, sess.ID)
		return "", Session{}, err
	}

	m.log.Info().Str("session_id", sess.ID).Str("email", result.Identity.Email).Msg("staff login")
	return signed, sess, nil
}

// Resolve maps a browser token to its stored session. The stored record
// is trusted as-is; the upstream is not consulted until one of its calls
// fails with 401.
func (m *Manager) Resolve(ctx context.Context, tokenStr string) (Session, error) {
	claims, err := ParseToken(tokenStr, m.secret)
	if err != nil {
		return Session{}, ErrSessionNotFound
	}
	return m.store.Get(ctx, claims.SessionID)
}

// Logout destroys the session unconditionally. There is nothing to
// notify upstream; the bearer token simply stops being used.
func (m *Manager) Logout(ctx context.Context, tokenStr string) {
	claims, err := ParseToken(tokenStr, m.secret)
	if err != nil {
		return
	}
	m.Destroy(ctx, claims.SessionID)
}

// Destroy removes the session and fires the teardown hook. Store errors
// are logged, not surfaced: by the time this runs the session is gone
// from the caller's perspective either way.
func (m *Manager) Destroy(ctx context.Context, sessionID string) {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		m.log.Warn().Err(err).Str("session_id", sessionID).Msg("session delete failed")
	}
	if m.onDestroy != nil {
		m.onDestroy(sessionID)
	}
	m.log.Info().Str("session_id", sessionID).Msg("session destroyed")
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
