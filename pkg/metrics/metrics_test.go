package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Count(t *testing.T) {
	r := New()
	r.Count("webhook", OutcomeSuccess)
	r.Count("webhook", OutcomeSuccess)
	r.Count("bot", OutcomeResponse)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.posts.WithLabelValues("webhook", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.posts.WithLabelValues("bot", OutcomeResponse)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.posts.WithLabelValues("bot", OutcomeSuccess)))
}

func TestRecorder_ObserveDuration(t *testing.T) {
	r := New()
	r.ObserveDuration("bot", 120*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}

func TestRecorder_nil(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Count("bot", OutcomeSuccess)
		r.ObserveDuration("bot", time.Second)
	})
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.Count("webhook", OutcomeNoResponse)

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `slack_mcp_messages_total{mode="webhook",outcome="no_response"} 1`)
	assert.Contains(t, string(body), "slack_mcp_server_build_info")
}

func TestRecorder_Serve_stopsOnCancel(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
