package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RK-HR-org/rsq/internal/output"
)

// memCreds is an in-memory CredentialSource for tests.
type memCreds struct {
	mu      sync.Mutex
	access  string
	refresh string
	sets    int
	clears  int
}

func (m *memCreds) Tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

func (m *memCreds) SetTokens(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
	m.sets++
	return nil
}

func (m *memCreds) ClearTokens() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.clears++
	return nil
}

func (m *memCreds) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

func TestBearerAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	creds := &memCreds{access: "tok-1", refresh: "ref-1"}
	client := NewClient(srv.URL, creds)

	_, err := client.Get(context.Background(), "/v1/auth/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestNoBearerWhenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memCreds{})
	_, err := client.Post(context.Background(), "/v1/auth/login", map[string]string{"email": "a@b.c"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestSingleRefreshForConcurrentRequests(t *testing.T) {
	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// Hold the refresh open so concurrent 401s pile up on the waiter list.
		time.Sleep(100 * time.Millisecond)
		fmt.Fprint(w, `{"access_token":"fresh","refresh_token":"fresh-r"}`)
	})
	mux.HandleFunc("/v1/search/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"token expired"}`)
			return
		}
		fmt.Fprint(w, `{"items":[],"total":0}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := &memCreds{access: "stale", refresh: "ref-1"}
	client := NewClient(srv.URL, creds)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Get(context.Background(), "/v1/search/sessions", nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), refreshCalls.Load(), "exactly one refresh call must be issued")
	for i, err := range errs {
		assert.NoError(t, err, "request %d should succeed after replay", i)
	}
	access, refresh := creds.Tokens()
	assert.Equal(t, "fresh", access)
	assert.Equal(t, "fresh-r", refresh)
}

func TestRefreshFailureFanOut(t *testing.T) {
	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		time.Sleep(250 * time.Millisecond)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"refresh token revoked"}`)
	})
	mux.HandleFunc("/v1/search/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"token expired"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := &memCreds{access: "stale", refresh: "bad-ref"}
	client := NewClient(srv.URL, creds)

	var expired atomic.Int64
	client.OnAuthExpired(func() { expired.Add(1) })

	const n = 6
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Get(context.Background(), "/v1/search/sessions", nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), refreshCalls.Load())
	assert.Equal(t, 1, creds.clearCount(), "credentials must be cleared exactly once")
	assert.Equal(t, int64(1), expired.Load())

	for i, err := range errs {
		require.Error(t, err, "request %d must fail", i)
		e := output.AsError(err)
		assert.Equal(t, http.StatusUnauthorized, e.HTTPStatus, "request %d: wrong error class: %v", i, err)
	}

	access, refresh := creds.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestNoDoubleRetry(t *testing.T) {
	var refreshCalls, dataCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		fmt.Fprint(w, `{"access_token":"fresh","refresh_token":"fresh-r"}`)
	})
	mux.HandleFunc("/v1/search/sessions", func(w http.ResponseWriter, r *http.Request) {
		dataCalls.Add(1)
		// Still 401 even after the refresh: the replay must not trigger a
		// second refresh cycle.
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"nope"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, &memCreds{access: "stale", refresh: "ref-1"})

	_, err := client.Get(context.Background(), "/v1/search/sessions", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, output.AsError(err).HTTPStatus)
	assert.Equal(t, int64(1), refreshCalls.Load(), "replay 401 must not refresh again")
	assert.Equal(t, int64(2), dataCalls.Load(), "original request plus one replay")
}

func TestMissingRefreshTokenSkipsNetworkCall(t *testing.T) {
	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		fmt.Fprint(w, `{"access_token":"x","refresh_token":"y"}`)
	})
	mux.HandleFunc("/v1/search/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := &memCreds{access: "stale"} // no refresh token
	client := NewClient(srv.URL, creds)

	var expired bool
	client.OnAuthExpired(func() { expired = true })

	_, err := client.Get(context.Background(), "/v1/search/sessions", nil)
	require.Error(t, err)
	assert.Equal(t, output.CodeAuth, output.AsError(err).Code)
	assert.Equal(t, int64(0), refreshCalls.Load(), "no refresh call without a refresh token")
	assert.Equal(t, 1, creds.clearCount())
	assert.True(t, expired)
}

func TestNon401ErrorsPassThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/team/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/team/locked", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"detail":"permission execute_hh_search required"}`)
	})
	mux.HandleFunc("/v1/team", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":[{"loc":["body","name"],"msg":"field required"}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, &memCreds{access: "tok", refresh: "ref"})
	ctx := context.Background()

	_, err := client.Get(ctx, "/v1/team/missing", nil)
	assert.Equal(t, output.CodeNotFound, output.AsError(err).Code)

	_, err = client.Get(ctx, "/v1/team/locked", nil)
	e := output.AsError(err)
	assert.Equal(t, output.CodeForbidden, e.Code)
	assert.Equal(t, "permission execute_hh_search required", e.Message)

	_, err = client.Post(ctx, "/v1/team", map[string]string{})
	e = output.AsError(err)
	assert.Equal(t, output.CodeValidation, e.Code)
	var fields []map[string]any
	require.NoError(t, json.Unmarshal(e.Details, &fields))
	assert.Len(t, fields, 1)
}

func TestRateLimitRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memCreds{access: "tok", refresh: "ref"})
	_, err := client.Get(context.Background(), "/v1/search/sessions", nil)

	e := output.AsError(err)
	assert.Equal(t, output.CodeRateLimit, e.Code)
	assert.Contains(t, e.Hint, "30 seconds")
}

func TestQueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &memCreds{access: "tok", refresh: "ref"})
	q := url.Values{}
	q.Set("limit", "20")
	q.Set("offset", "40")
	_, err := client.Get(context.Background(), "/v1/search/sessions", q)
	require.NoError(t, err)
	assert.Equal(t, "limit=20&offset=40", gotQuery)
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fallback string
		want     string
	}{
		{"detail string", `{"detail":"session not approved"}`, "fb", "session not approved"},
		{"error field", `{"error":"boom"}`, "fb", "boom"},
		{"message field", `{"message":"nope"}`, "fb", "nope"},
		{"structured detail", `{"detail":[{"msg":"bad"}]}`, "fb", "fb"},
		{"garbage", `<!doctype html>`, "fb", "fb"},
		{"empty", ``, "fb", "fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body), tt.fallback))
		})
	}
}
