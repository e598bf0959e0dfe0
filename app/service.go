package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/pulsarops/aosched/config"
	"github.com/pulsarops/aosched/connectors/naic"
	"github.com/pulsarops/aosched/core/schedule"
	"github.com/pulsarops/aosched/infra/logger"
	"github.com/pulsarops/aosched/infra/metrics"
	"github.com/pulsarops/aosched/pkg/export"
)

// Service periodically refreshes one project's schedule and publishes it
// over HTTP as wiki lines, JSON and an iCalendar feed. A failed refresh
// keeps the last good schedule in place.
type Service struct {
	cfg     *config.Config
	project string
	year    string

	log       logger.Logger
	client    *naic.Client
	zones     schedule.Zones
	collector *metrics.Collector

	mu    sync.RWMutex
	sched *schedule.Schedule
}

// New creates a Service from the configuration.
func New(cfg *config.Config, project, year string) (*Service, error) {
	logg := logger.New("service")
	zones, err := schedule.LoadZones(cfg.Schedule.LocalZone, cfg.Schedule.UniversalZone)
	if err != nil {
		return nil, err
	}
	client := naic.NewClient(cfg.Fetch.BaseURL, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, logg)

	svc := &Service{
		cfg:     cfg,
		project: project,
		year:    year,
		log:     logg,
		client:  client,
		zones:   zones,
	}
	if cfg.Serve.MetricsEnabled {
		col, err := metrics.NewCollector(nil)
		if err != nil {
			return nil, fmt.Errorf("metrics collector: %w", err)
		}
		svc.collector = col
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled. The
// initial refresh must succeed; there is nothing to serve without it.
func (s *Service) Run(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		return fmt.Errorf("initial refresh: %w", err)
	}

	cr := cron.New()
	if _, err := cr.AddFunc(s.cfg.Serve.RefreshCron, func() {
		if err := s.refresh(ctx); err != nil {
			s.log.Errorf("scheduled refresh failed, keeping last schedule: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("refresh cron %q: %w", s.cfg.Serve.RefreshCron, err)
	}
	cr.Start()
	defer cr.Stop()

	if s.cfg.Serve.MetricsEnabled {
		go func() {
			if err := metrics.StartServer(ctx, s.cfg.Serve.MetricsListen); err != nil {
				s.log.Errorf("metrics server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Serve.Listen, Handler: s.Routes()}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	s.log.Infof("serving %s/%s schedule on %s", s.project, s.year, s.cfg.Serve.Listen)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// refresh fetches the raw grid and swaps in a freshly built schedule.
func (s *Service) refresh(ctx context.Context) error {
	fetchID := uuid.NewString()
	start := time.Now()

	rows, err := s.client.Fetch(ctx, s.project, s.year)
	var sched *schedule.Schedule
	if err == nil {
		sched, err = schedule.New(rows, s.zones, s.log)
	}
	if s.collector != nil {
		s.collector.ObserveRefresh(time.Since(start), err)
	}
	if err != nil {
		s.log.Debugw("refresh failed", map[string]any{"fetch_id": fetchID, "err": err.Error()})
		return err
	}

	s.mu.Lock()
	s.sched = sched
	s.mu.Unlock()
	if s.collector != nil {
		s.collector.SetSessionCount(sched.Len())
	}
	s.log.Debugw("refresh complete", map[string]any{
		"fetch_id": fetchID,
		"sessions": sched.Len(),
		"took":     time.Since(start).String(),
	})
	return nil
}

func (s *Service) current() *schedule.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched
}

// Routes builds the HTTP handler serving the schedule endpoints.
func (s *Service) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", s.handleLines)
	mux.HandleFunc("/schedule.json", s.handleJSON)
	mux.HandleFunc("/schedule.ics", s.handleICS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Service) handleLines(w http.ResponseWriter, _ *http.Request) {
	sched := s.current()
	if sched == nil {
		http.Error(w, "schedule not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, line := range sched.WikiLines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return
		}
	}
}

func (s *Service) handleJSON(w http.ResponseWriter, _ *http.Request) {
	sched := s.current()
	if sched == nil {
		http.Error(w, "schedule not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, sched.Sessions()); err != nil {
		s.log.Errorf("write json: %v", err)
	}
}

func (s *Service) handleICS(w http.ResponseWriter, _ *http.Request) {
	sched := s.current()
	if sched == nil {
		http.Error(w, "schedule not loaded", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	if err := export.WriteICS(w, sched.Sessions()); err != nil {
		s.log.Errorf("write ics: %v", err)
	}
}
