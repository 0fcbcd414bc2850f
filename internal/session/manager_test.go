package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"ctlfx/console/internal/upstream"
)

func loginBackend(t *testing.T, body string, status int) *upstream.Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return upstream.New(ts.URL, 2*time.Second, zerolog.Nop())
}

const goodLoginBody = `{
	"success": true,
	"data": {
		"token": "up-token",
		"user": {"id": 1, "email": "admin@example.com", "name": "Admin", "role": "admin"}
	}
}`

func TestLoginPersistsSession(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, loginBackend(t, goodLoginBody, http.StatusOK), "secret", time.Hour, zerolog.Nop())

	signed, sess, err := mgr.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "up-token" || sess.Identity.Email != "admin@example.com" {
		t.Fatalf("session built wrong: %+v", sess)
	}

	resolved, err := mgr.Resolve(context.Background(), signed)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != sess.ID {
		t.Fatalf("resolved wrong session: %q != %q", resolved.ID, sess.ID)
	}
}

func TestLoginInvalidResponsePersistsNothing(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, loginBackend(t, `{"success": true, "data": {}}`, http.StatusOK), "secret", time.Hour, zerolog.Nop())

	if _, _, err := mgr.Login(context.Background(), "admin@example.com", "pw"); err == nil {
		t.Fatal("expected login failure")
	}
	store.mu.RLock()
	defer store.mu.RUnlock()
	if len(store.sessions) != 0 {
		t.Fatalf("expected no stored sessions, got %d", len(store.sessions))
	}
}

func TestLogoutAlwaysClears(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, loginBackend(t, goodLoginBody, http.StatusOK), "secret", time.Hour, zerolog.Nop())

	signed, _, err := mgr.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	mgr.Logout(context.Background(), signed)
	if _, err := mgr.Resolve(context.Background(), signed); err == nil {
		t.Fatal("expected session to be gone after logout")
	}
}

func TestDestroyFiresHook(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, loginBackend(t, goodLoginBody, http.StatusOK), "secret", time.Hour, zerolog.Nop())

	var dropped string
	mgr.OnDestroy(func(id string) { dropped = id })

	_, sess, err := mgr.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	mgr.Destroy(context.Background(), sess.ID)
	if dropped != sess.ID {
		t.Fatalf("expected hook with %q, got %q", sess.ID, dropped)
	}
}

func TestResolveGarbageToken(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), loginBackend(t, goodLoginBody, http.StatusOK), "secret", time.Hour, zerolog.Nop())

	if _, err := mgr.Resolve(context.Background(), "not-a-jwt"); err == nil {
		t.Fatal("expected resolve failure")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	sess := Session{ID: "s1", ExpiresAt: time.Now().Add(-time.Minute)}
	if err := store.Put(context.Background(), sess); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Get(context.Background(), "s1"); err != ErrSessionNotFound {
		t.Fatalf("expected not-found for expired session, got %v", err)
	}
}
