package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Poll results.
const (
	PollNoChange   = "no_change"
	PollNewStatus  = "new_status"
	PollFetchError = "fetch_error"
	PollFailed     = "failed"
)

// Recorder holds the bot's counters. Each Recorder owns its registry so tests
// can create as many as they like.
type Recorder struct {
	Registry      *prometheus.Registry
	Polls         *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Cursor        prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		Polls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homework_polls_total",
				Help: "Total number of status API polls by result",
			},
			[]string{"result"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homework_notifications_total",
				Help: "Total number of chat notifications by kind and status",
			},
			[]string{"kind", "status"},
		),
		Cursor: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "homework_poll_cursor_seconds",
				Help: "Unix timestamp the next poll starts from",
			},
		),
	}
	r.Registry.MustRegister(r.Polls, r.Notifications, r.Cursor)
	return r
}

func (r *Recorder) ObservePoll(result string) {
	r.Polls.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveNotification(kind string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	r.Notifications.WithLabelValues(kind, status).Inc()
}

func (r *Recorder) SetCursor(unix int64) {
	r.Cursor.Set(float64(unix))
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

// Serve runs the /metrics listener until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
