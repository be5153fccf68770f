package httpx

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), RequestID(), Logging(logger))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/brew", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http", entry["msg"])
	assert.Equal(t, "/brew", entry["path"])
	assert.InDelta(t, float64(http.StatusTeapot), entry["status"], 0)
	assert.NotEmpty(t, entry["request_id"])
}

func TestRequireToken_SetsPrincipal(t *testing.T) {
	var got Principal
	h := RequireToken(TokenTable{"t": "u-7"})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = GetPrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer t")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "u-7", got.UserID)
}

func TestParseFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/me?fields=a,%20b,&fields[]=c", nil)
	assert.Equal(t, []string{"a", "b", "c"}, parseFields(req))

	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	assert.Empty(t, parseFields(req))
}
