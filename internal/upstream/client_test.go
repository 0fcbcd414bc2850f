package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL, 5*time.Second, zerolog.Nop()), ts
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))

	bound := client.WithSession("tok-123", nil)
	if _, err := bound.Users(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))

	if _, err := client.Users(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestUnauthorizedFiresHookOncePerResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "token expired"}`))
	}))

	var hookCalls int32
	bound := client.WithSession("stale", func() {
		atomic.AddInt32(&hookCalls, 1)
	})

	_, err := bound.Users(context.Background(), ListQuery{})
	if KindOf(err) != KindAuth {
		t.Fatalf("expected auth error, got %v", err)
	}
	if got := atomic.LoadInt32(&hookCalls); got != 1 {
		t.Fatalf("expected hook to fire once, fired %d times", got)
	}

	// a second failing call fires the hook again: once per response
	_, _ = bound.Users(context.Background(), ListQuery{})
	if got := atomic.LoadInt32(&hookCalls); got != 2 {
		t.Fatalf("expected hook per response, got %d", got)
	}
}

func TestServerErrorMessagePreference(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error": "insufficient funds", "message": "request failed"}`, "insufficient funds"},
		{`{"message": "request failed"}`, "request failed"},
		{`not even json`, fallbackMessage},
	}

	for _, tc := range cases {
		body := tc.body
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(body))
		}))

		_, err := client.Users(context.Background(), ListQuery{})
		if KindOf(err) != KindServer {
			t.Fatalf("body %s: expected server error, got %v", tc.body, err)
		}
		if Message(err) != tc.want {
			t.Fatalf("body %s: expected message %q, got %q", tc.body, tc.want, Message(err))
		}
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := New(ts.URL, 20*time.Millisecond, zerolog.Nop())
	_, err := client.Users(context.Background(), ListQuery{})
	if KindOf(err) != KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
}

func TestListQueryValues(t *testing.T) {
	var gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))

	_, err := client.Payments(context.Background(), ListQuery{Search: "smith", Limit: 10, Offset: 20, Type: "deposit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"q=smith", "limit=10", "offset=20", "type=deposit"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestMessageNonUpstreamError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Fatalf("expected plain error text, got %q", got)
	}
	if got := Message(nil); got != "" {
		t.Fatalf("expected empty for nil, got %q", got)
	}
}
