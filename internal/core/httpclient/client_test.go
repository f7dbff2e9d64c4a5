package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/proxy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestLoggingRoundTripper_ForwardsRayID(t *testing.T) {
	logs := observeLogs(t)

	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(RayIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx := logger.WithRayID(context.Background(), "ray-42")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/user/orders", nil)
	require.NoError(t, err)

	resp, err := NewClient(time.Second, proxy.Settings{}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ray-42", got)
	assert.Empty(t, req.Header.Get(RayIDHeader), "caller's request must not be mutated")

	completed := logs.FilterMessage("Backend request completed").All()
	require.Len(t, completed, 1)
	fields := completed[0].ContextMap()
	assert.Equal(t, "ray-42", fields["ray_id"])
	assert.Equal(t, int64(http.StatusOK), fields["status_code"])
}

func TestLoggingRoundTripper_WithoutRayID(t *testing.T) {
	observeLogs(t)

	var present bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header[RayIDHeader]
	}))
	defer ts.Close()

	resp, err := NewClient(time.Second, proxy.Settings{}).Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.False(t, present)
}

func TestLoggingRoundTripper_Error(t *testing.T) {
	logs := observeLogs(t)

	_, err := NewClient(time.Second, proxy.Settings{}).Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Backend request failed").Len())
}

func TestNewClient_Proxy(t *testing.T) {
	var proxied bool
	proxyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = true
		w.WriteHeader(http.StatusTeapot)
	}))
	defer proxyServer.Close()

	host, port := splitHostPort(t, proxyServer.Listener.Addr().String())

	client := NewClient(time.Second, proxy.Settings{Enabled: true, Hostname: host, Port: port})
	resp, err := client.Get("http://backend.invalid/api/user/orders")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.True(t, proxied)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
