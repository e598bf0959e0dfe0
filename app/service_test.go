package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pulsarops/aosched/config"
	"github.com/pulsarops/aosched/core/schedule"
)

const rawFeed = `<html><body><pre>
Jul_11_20 P2780 x x x (d) x x 08:45 15:45 x AST 0 0 35 63 7.00
Jul_12_20 P2780 x x x (c) x x 21:15 06:30 x AST 0 1 85 26 9.25
</pre></body></html>`

func testService(t *testing.T, baseURL string) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.Fetch.BaseURL = baseURL
	svc, err := New(cfg, "P2780", "2020")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rawFeed))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	if err := svc.refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	sched := svc.current()
	if sched == nil || sched.Len() != 2 {
		t.Fatalf("schedule not loaded: %v", sched)
	}
}

func TestRefreshFailureKeepsSchedule(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			http.Error(w, "gone", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(rawFeed))
	}))
	defer srv.Close()

	svc := testService(t, srv.URL)
	if err := svc.refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	healthy = false
	if err := svc.refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}
	if sched := svc.current(); sched == nil || sched.Len() != 2 {
		t.Fatalf("last good schedule must survive a failed refresh")
	}
}

func TestRoutesNotLoaded(t *testing.T) {
	svc := testService(t, "http://127.0.0.1:0")
	for _, path := range []string{"/schedule", "/schedule.json", "/schedule.ics"} {
		rr := httptest.NewRecorder()
		svc.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("%s = %d, want 503 before first refresh", path, rr.Code)
		}
	}
}

func TestRoutes(t *testing.T) {
	svc := testService(t, "http://127.0.0.1:0")
	zones, err := schedule.LoadZones("", "")
	if err != nil {
		t.Fatalf("zones: %v", err)
	}
	rows := []schedule.Row{{
		Date:    "Jul_11_20",
		Project: "P2780",
		Code:    "(d)",
		Begin:   schedule.GridRef{Slot: 35},
		End:     schedule.GridRef{Slot: 63},
	}}
	sched, err := schedule.New(rows, zones, nil)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	svc.sched = sched
	routes := svc.Routes()

	rr := httptest.NewRecorder()
	routes.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/schedule = %d", rr.Code)
	}
	if want := "2020 Jul 11: 08:45 - 15:45: P2780 (Session D): <br>"; !strings.Contains(rr.Body.String(), want) {
		t.Errorf("/schedule body = %q, want %q", rr.Body.String(), want)
	}

	rr = httptest.NewRecorder()
	routes.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule.json", nil))
	var sessions []schedule.Session
	if err := json.Unmarshal(rr.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("/schedule.json decode: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Label != "D" {
		t.Errorf("unexpected sessions: %+v", sessions)
	}

	rr = httptest.NewRecorder()
	routes.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedule.ics", nil))
	if !strings.Contains(rr.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("/schedule.ics body = %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	routes.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("/healthz = %d", rr.Code)
	}
}
