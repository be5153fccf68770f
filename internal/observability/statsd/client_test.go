package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" api/request ":      "api_request",
		"api..latency":       "api.latency",
		"route:users|me":     "route_users_me",
		".leading.trailing.": "leading.trailing",
	}

	for input, want := range tests {
		assert.Equal(t, want, normalizeMetricName(input), input)
	}
}

func TestFormatTags_LocalOverridesGlobal(t *testing.T) {
	t.Parallel()

	global := map[string]string{"env": "prod", " service ": " usersession "}
	local := map[string]string{"route": "/users/me", "": "ignored", "env": "stage"}

	assert.Equal(t, "|#env:stage,route:/users/me,service:usersession", formatTags(global, local))
	assert.Empty(t, formatTags(nil, nil))
}

func TestClient_DisabledDropsMetrics(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	c.Timing("api.request.latency", time.Second, nil)
	require.NoError(t, c.Close())
}

func TestClient_NilIsSafe(t *testing.T) {
	t.Parallel()

	var c *Client
	c.Count("x", 1, nil)
	c.Timing("x", time.Millisecond, nil)
	assert.False(t, c.Enabled())
	assert.NoError(t, c.Close())
}

func TestClient_WritesTimingLine(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	c, err := NewClient(Config{
		Enabled:    true,
		Address:    pc.LocalAddr().String(),
		Prefix:     "usersession.",
		GlobalTags: map[string]string{"env": "test"},
	})
	require.NoError(t, err)
	defer c.Close()

	c.Timing("api.request.latency", 1500*time.Microsecond, map[string]string{"method": "PATCH"})

	buf := make([]byte, 512)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "usersession.api.request.latency:1.5|ms|#env:test,method:PATCH", string(buf[:n]))
}
