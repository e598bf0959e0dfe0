package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `fetch:
  base_url: "http://localhost:8081/schedrawd.cgi"
  timeout_seconds: 5
schedule:
  local_zone: "America/Puerto_Rico"
  universal_zone: "UTC"
serve:
  listen: ":8088"
  refresh_cron: "*/10 * * * *"
  metrics_enabled: true
  metrics_listen: ":9191"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"base_url", cfg.Fetch.BaseURL, "http://localhost:8081/schedrawd.cgi"},
		{"timeout_seconds", cfg.Fetch.TimeoutSeconds, 5},
		{"local_zone", cfg.Schedule.LocalZone, "America/Puerto_Rico"},
		{"universal_zone", cfg.Schedule.UniversalZone, "UTC"},
		{"listen", cfg.Serve.Listen, ":8088"},
		{"refresh_cron", cfg.Serve.RefreshCron, "*/10 * * * *"},
		{"metrics_enabled", cfg.Serve.MetricsEnabled, true},
		{"metrics_listen", cfg.Serve.MetricsListen, ":9191"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("fetch: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Fetch.TimeoutSeconds != 15 {
		t.Errorf("timeout default = %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Serve.Listen != ":8080" || cfg.Serve.RefreshCron == "" {
		t.Errorf("serve defaults not applied: %+v", cfg.Serve)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("x = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Fetch.TimeoutSeconds != 15 {
		t.Errorf("fetch defaults not applied: %+v", cfg.Fetch)
	}
	if err := cfg.Serve.Validate(); err != nil {
		t.Errorf("default serve config invalid: %v", err)
	}
}
