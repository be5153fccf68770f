package restapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
)

type timing struct {
	name string
	tags map[string]string
}

type recordingSink struct {
	mu      sync.Mutex
	timings []timing
}

func (s *recordingSink) Count(string, int64, map[string]string) {}

func (s *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = append(s.timings, timing{name: name, tags: tags})
}

func newTestClient(t *testing.T, srv *httptest.Server, sink *recordingSink) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:    srv.URL,
		Token:      "static-token",
		HTTPClient: srv.Client(),
		Metrics:    sink,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base url is required")

	_, err = NewClient(Config{BaseURL: "ftp://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}

func TestClient_GetCurrentUser(t *testing.T) {
	var gotAuth, gotFields string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/me", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotFields = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"id":"u-1","role":{"id":"r-1","admin_access":true}}}`)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	c := newTestClient(t, srv, sink)

	rec, err := c.GetCurrentUser(context.Background(), []string{"*", " role.id ", ""})
	require.NoError(t, err)

	assert.Equal(t, "Bearer static-token", gotAuth)
	assert.Equal(t, "*,role.id", gotFields)
	assert.Equal(t, "u-1", rec.ID())
	assert.True(t, rec.AdminAccess())
	assert.Empty(t, sink.timings, "reads are not tagged for latency")
}

func TestClient_GetCurrentUser_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"errors":[{"message":"Invalid user credentials.","extensions":{"code":"INVALID_CREDENTIALS"}}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &recordingSink{})

	rec, err := c.GetCurrentUser(context.Background(), domainuser.DefaultFields())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Invalid user credentials.")
}

func TestClient_GetCurrentUser_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &recordingSink{})

	_, err := c.GetCurrentUser(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestClient_GetCurrentUser_NullData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":null}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &recordingSink{})

	_, err := c.GetCurrentUser(context.Background(), nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_TrackPage(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/me/track/page", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	c := newTestClient(t, srv, sink)

	require.NoError(t, c.TrackPage(context.Background(), "/content/articles?page=2"))

	assert.Equal(t, map[string]string{"last_page": "/content/articles?page=2"}, body)
	require.Len(t, sink.timings, 1)
	assert.Equal(t, MetricRequestLatency, sink.timings[0].name)
	assert.Equal(t, map[string]string{
		"method": http.MethodPatch,
		"route":  "/users/me/track/page",
		"status": "204",
	}, sink.timings[0].tags)
}

func TestClient_TrackPage_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, srv, &recordingSink{})
	srv.Close()

	err := c.TrackPage(context.Background(), "/x")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &recordingSink{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetCurrentUser(ctx, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}
