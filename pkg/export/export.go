package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pulsarops/aosched/core/schedule"
)

// WriteJSON writes the session sequence to w in JSON format.
func WriteJSON(w io.Writer, sessions []schedule.Session) error {
	enc := json.NewEncoder(w)
	return enc.Encode(sessions)
}

// WriteCSV writes the session sequence to w in CSV format.
func WriteCSV(w io.Writer, sessions []schedule.Session) error {
	cw := csv.NewWriter(w)
	header := []string{"project", "label", "start_local", "end_local", "start_utc", "end_utc", "spans_days"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range sessions {
		rec := []string{
			s.Project,
			s.Label,
			s.StartLocal.Format(time.RFC3339),
			s.EndLocal.Format(time.RFC3339),
			s.StartUTC.Format(time.RFC3339),
			s.EndUTC.Format(time.RFC3339),
			strconv.FormatBool(s.SpansDays),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteICS publishes the session sequence as an iCalendar feed. Events carry
// UTC instants; calendar clients localize for display.
func WriteICS(w io.Writer, sessions []schedule.Session) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//aosched//observing schedule//EN")

	now := time.Now().UTC()
	for i, s := range sessions {
		uid := fmt.Sprintf("%s-%s-%d@aosched", s.Project, s.StartUTC.Format("20060102T150405Z"), i)
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(now)
		ev.SetStartAt(s.StartUTC)
		ev.SetEndAt(s.EndUTC)
		ev.SetSummary(fmt.Sprintf("%s session %s", s.Project, s.Label))
	}
	return cal.SerializeTo(w)
}
