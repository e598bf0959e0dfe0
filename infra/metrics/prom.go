package metrics

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks schedule refresh activity for the publication service.
type Collector struct {
	refreshes *prometheus.CounterVec
	duration  prometheus.Histogram
	sessions  prometheus.Gauge
}

// NewCollector registers refresh metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aosched_refreshes_total",
		Help: "Total number of schedule refresh attempts",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aosched_refresh_duration_seconds",
		Help:    "Time spent fetching and rebuilding the schedule",
		Buckets: prometheus.DefBuckets,
	})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "aosched_sessions",
		Help: "Number of sessions in the currently served schedule",
	})

	if err := reg.Register(refreshes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			refreshes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(sessions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			sessions = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &Collector{refreshes: refreshes, duration: duration, sessions: sessions}, nil
}

// ObserveRefresh records one refresh attempt.
func (c *Collector) ObserveRefresh(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.refreshes.WithLabelValues(result).Inc()
	c.duration.Observe(d.Seconds())
}

// SetSessionCount records the size of the schedule currently being served.
func (c *Collector) SetSessionCount(n int) {
	c.sessions.Set(float64(n))
}

// StartServer starts an HTTP server exposing Prometheus metrics on the given
// address. The server runs until the provided context is canceled. A
// dedicated ServeMux is used to avoid interfering with the schedule handlers.
func StartServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("metrics server shutdown: %v", err)
		}
		cancel()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
