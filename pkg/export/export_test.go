package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pulsarops/aosched/core/schedule"
)

func sampleSessions(t *testing.T) []schedule.Session {
	t.Helper()
	zones, err := schedule.LoadZones("", "")
	if err != nil {
		t.Fatalf("zones: %v", err)
	}
	rows := []schedule.Row{
		{Date: "Jul_11_20", Project: "P2780", Code: "(d)", Begin: schedule.GridRef{Slot: 35}, End: schedule.GridRef{Slot: 63}},
		{Date: "Jul_12_20", Project: "P2780", Code: "(c)", Begin: schedule.GridRef{Slot: 85}, End: schedule.GridRef{Day: 1, Slot: 26}},
	}
	s, err := schedule.New(rows, zones, nil)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return s.Sessions()
}

func TestWriteJSON(t *testing.T) {
	sessions := sampleSessions(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sessions); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded []schedule.Session
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d sessions, want 2", len(decoded))
	}
	if decoded[0].Label != "D" || !decoded[0].StartUTC.Equal(sessions[0].StartUTC) {
		t.Errorf("round trip mismatch: %+v", decoded[0])
	}
}

func TestWriteCSV(t *testing.T) {
	sessions := sampleSessions(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sessions); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(recs))
	}
	if recs[0][0] != "project" {
		t.Errorf("missing header: %v", recs[0])
	}
	if recs[1][1] != "D" || recs[2][6] != "true" {
		t.Errorf("unexpected rows: %v", recs[1:])
	}
	if recs[1][2] != sessions[0].StartLocal.Format(time.RFC3339) {
		t.Errorf("start_local = %q", recs[1][2])
	}
}

func TestWriteICS(t *testing.T) {
	sessions := sampleSessions(t)
	var buf bytes.Buffer
	if err := WriteICS(&buf, sessions); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"END:VCALENDAR",
		"METHOD:PUBLISH",
		"SUMMARY:P2780 session D",
		"SUMMARY:P2780 session C",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ics output missing %q", want)
		}
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("events = %d, want 2", got)
	}
}
