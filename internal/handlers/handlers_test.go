package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ctlfx/console/internal/config"
	"ctlfx/console/internal/session"
	"ctlfx/console/internal/upstream"
	"ctlfx/console/internal/view"
)

// fakeBackend plays the payments platform API: enough of the contract
// for the console to log in, list, and mutate against it.
type fakeBackend struct {
	mu        sync.Mutex
	hits      map[string]int
	deleted   map[int]bool
	usersCode int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{hits: map[string]int{}, deleted: map[int]bool{}}
}

func (b *fakeBackend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits[r.Method+" "+r.URL.Path]++
	usersCode := b.usersCode
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		fmt.Fprint(w, `{
			"success": true,
			"data": {"token": "up-token", "user": {"id": 1, "email": "admin@example.com", "name": "Admin", "role": "admin"}}
		}`)

	case r.Method == http.MethodGet && r.URL.Path == "/user":
		if usersCode != 0 {
			w.WriteHeader(usersCode)
			fmt.Fprint(w, `{"error": "token expired"}`)
			return
		}
		fmt.Fprint(w, `{
			"success": true,
			"data": {"users": [
				{"id": 1, "email": "a@b.c", "amount": 10, "isDeleted": false},
				{"id": 2, "email": "d@e.f", "amount": 20, "isDeleted": false}
			], "total": 2}
		}`)

	case r.Method == http.MethodPost && r.URL.Path == "/user":
		fmt.Fprint(w, `{"success": true, "data": {"user": {"id": 3, "email": "new@b.c", "amount": 0}}}`)

	case r.Method == http.MethodGet && r.URL.Path == "/payments":
		b.mu.Lock()
		items := []string{}
		for _, id := range []int{5, 6, 7} {
			if b.deleted[id] {
				continue
			}
			items = append(items, fmt.Sprintf(`{"id": %d, "userId": 1, "amount": 42.5, "type": "deposit", "status": "pending"}`, id))
		}
		b.mu.Unlock()
		fmt.Fprintf(w, `{"success": true, "data": {"payments": [%s], "total": %d}}`, strings.Join(items, ","), len(items))

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/payments/"):
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/payments/"))
		b.mu.Lock()
		b.deleted[id] = true
		b.mu.Unlock()
		fmt.Fprint(w, `{"success": true, "message": "payment deleted"}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "not found"}`)
	}
}

func newConsole(t *testing.T) (*gin.Engine, *fakeBackend) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := newFakeBackend()
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	cfg := &config.AppConfig{
		Environment: "test",
		Upstream:    config.UpstreamConfig{BaseURL: ts.URL, Timeout: 2 * time.Second},
		Session:     config.SessionConfig{Secret: "test-secret", TTL: time.Hour},
		View:        config.ViewConfig{PageSize: 10, SearchDebounce: 10 * time.Millisecond},
	}

	logger := zerolog.Nop()
	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger)
	sessions := session.NewManager(session.NewMemoryStore(), client, cfg.Session.Secret, cfg.Session.TTL, logger)
	views := view.NewRegistry(view.Options{PageSize: cfg.View.PageSize, Debounce: cfg.View.SearchDebounce})
	sessions.OnDestroy(views.Drop)

	router := gin.New()
	h := NewHandlerSet(logger, cfg, client, sessions, views)
	h.Register(router.Group("/api"))
	return router, backend
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", `{"email": "admin@example.com", "password": "pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if body.Token == "" {
		t.Fatal("empty session token")
	}
	return body.Token
}

func TestLoginSetsCookie(t *testing.T) {
	router, _ := newConsole(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", `{"email": "admin@example.com", "password": "pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "console_session" {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("session cookie not set")
	}

	var body struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.Email != "admin@example.com" {
		t.Fatalf("wrong identity: %+v", body)
	}
}

func TestLoginRejectsMalformedEmailLocally(t *testing.T) {
	router, backend := newConsole(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", `{"email": "not-an-email", "password": "pw"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := backend.count(http.MethodPost, "/auth/login"); got != 0 {
		t.Fatalf("malformed input must not reach the upstream, got %d calls", got)
	}
}

func TestMeRequiresSession(t *testing.T) {
	router, _ := newConsole(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	router, _ := newConsole(t)
	token := login(t, router)

	if rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", rec.Code)
	}

	if rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 from logout, got %d", rec.Code)
	}

	if rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestUsersViewLoads(t *testing.T) {
	router, _ := newConsole(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/views/users", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var snap struct {
		State string            `json:"state"`
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.State != "loaded" || len(snap.Items) != 2 || snap.Total != 2 {
		t.Fatalf("unexpected snapshot: %s", rec.Body.String())
	}
}

func TestCreateUserValidationSkipsUpstream(t *testing.T) {
	router, backend := newConsole(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users", token, `{"email": "broken", "password": "hunter22"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := backend.count(http.MethodPost, "/user"); got != 0 {
		t.Fatalf("invalid input must not reach the upstream, got %d calls", got)
	}
}

func TestDeletePaymentRemovesRowFromView(t *testing.T) {
	router, _ := newConsole(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/views/payments", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":5`) {
		t.Fatalf("expected payment 5 on the page: %s", rec.Body.String())
	}

	if rec = doJSON(t, router, http.MethodDelete, "/api/v1/payments/5", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from delete, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/views/payments", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if strings.Contains(rec.Body.String(), `"id":5`) || snap.Total != 2 {
		t.Fatalf("deleted payment still on the page: %s", rec.Body.String())
	}
}

func TestUpstreamAuthFailureEndsSession(t *testing.T) {
	router, backend := newConsole(t)
	token := login(t, router)

	backend.mu.Lock()
	backend.usersCode = http.StatusUnauthorized
	backend.mu.Unlock()

	// the view answers rather than crashing the page, but never reports
	// the rejected fetch as loaded data
	rec := doJSON(t, router, http.MethodGet, "/api/v1/views/users", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"state":"loaded"`) {
		t.Fatalf("rejected fetch must not load: %s", rec.Body.String())
	}

	// the upstream 401 tore the console session down
	if rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after upstream rejection, got %d", rec.Code)
	}
}

func TestPaymentsFilterRejectsUnknownType(t *testing.T) {
	router, _ := newConsole(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/views/payments/filter", token, `{"type": "bonus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPathIDRejectsGarbage(t *testing.T) {
	router, _ := newConsole(t)
	token := login(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/payments/abc", token, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
