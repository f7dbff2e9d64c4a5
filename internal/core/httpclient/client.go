package httpclient

import (
	"net/http"
	"time"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/proxy"

	"go.uber.org/zap"
)

// RayIDHeader carries the inbound request id to the backend so both sides log the same id.
const RayIDHeader = "X-Ray-ID"

// LoggingRoundTripper forwards the ray id of the calling request and logs method, URL,
// status and latency of every outbound request. Headers are never logged since they
// carry bearer tokens.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rayID := logger.RayIDFromContext(req.Context())
	if rayID != "" && req.Header.Get(RayIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RayIDHeader, rayID)
	}

	log := logger.FromContext(req.Context()).Named("httpclient").With(
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	)

	start := time.Now()
	log.Debug("Backend request started")

	resp, err := lrt.Proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		log.Error("Backend request failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, err
	}

	log.Debug("Backend request completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return resp, nil
}

// NewClient returns an http.Client with logging middleware routed through the given proxy settings.
func NewClient(timeout time.Duration, settings proxy.Settings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = settings.TransportFunc()

	return &http.Client{
		Transport: &LoggingRoundTripper{Proxied: transport},
		Timeout:   timeout,
	}
}
