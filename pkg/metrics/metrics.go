package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slack_mcp"

// Outcome labels for the posts counter.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeNotConfigured = "not_configured"
	OutcomeRequest       = "request"
	OutcomeNoResponse    = "no_response"
	OutcomeResponse      = "response"
)

// Recorder counts post attempts and their latency. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	posts    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Number of post_slack_message calls by mode and outcome.",
		}, []string{"mode", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "post_duration_seconds",
			Help:      "Time spent waiting for Slack to accept a message.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"mode"}),
	}
	r.registry.MustRegister(
		r.posts,
		r.latency,
		versioncollector.NewCollector("slack_mcp_server"),
	)
	return r
}

// Count records one call that ended with outcome.
func (r *Recorder) Count(mode, outcome string) {
	if r == nil {
		return
	}
	r.posts.WithLabelValues(mode, outcome).Inc()
}

// ObserveDuration records the time an outbound request took.
func (r *Recorder) ObserveDuration(mode string, d time.Duration) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(mode).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
