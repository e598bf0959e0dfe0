package schedule

import (
	"fmt"
	"time"

	"github.com/pulsarops/aosched/core/logger"
	"github.com/pulsarops/aosched/core/project"
)

// Session is the derived, display-ready form of one Row. Sessions are
// index-aligned with the rows they were derived from and never mutated
// after construction. The UTC pair always denotes the same instants as the
// local pair.
type Session struct {
	Project    string    `json:"project"`
	Label      string    `json:"label"`
	StartLocal time.Time `json:"start_local"`
	EndLocal   time.Time `json:"end_local"`
	StartUTC   time.Time `json:"start_utc"`
	EndUTC     time.Time `json:"end_utc"`
	SpansDays  bool      `json:"spans_days"`
	WikiLine   string    `json:"wiki_line"`
}

// Schedule owns one project's batch of reservation rows and everything
// derived from them. Construction is eager and all-or-nothing: translation,
// window resolution and line formatting run once, in that order, and any
// failure leaves no partial Schedule behind.
type Schedule struct {
	projectID string
	proj      project.Project
	rows      []Row
	sessions  []Session
	lines     []string
}

// nopLogger keeps New usable without a logger wired in (tests, library use).
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// New builds a Schedule from a fully materialized row batch. All rows are
// expected to share one project identifier; the first row's identifier
// selects the code table for the whole batch. An empty batch yields an
// empty Schedule. log may be nil.
func New(rows []Row, zones Zones, log logger.Logger) (*Schedule, error) {
	if log == nil {
		log = nopLogger{}
	}

	s := &Schedule{rows: rows}
	if len(rows) > 0 {
		s.projectID = rows[0].Project
		s.proj = project.Detect(s.projectID)
		if s.proj == project.Unknown {
			log.Warnf("no code table for project %q, session codes pass through untranslated", s.projectID)
		}
	}

	labels, err := translate(s.proj, rows)
	if err != nil {
		return nil, err
	}

	windows := make([]Window, len(rows))
	for i, r := range rows {
		w, werr := resolveWindow(r, zones)
		if werr != nil {
			return nil, fmt.Errorf("row %d: %w", i, werr)
		}
		if !w.EndLocal.After(w.StartLocal) {
			// Non-positive durations are passed through unchanged; the feed
			// is trusted, but the row is worth flagging.
			log.Warnf("row %d (%s %s): end %s does not follow start %s",
				i, s.projectID, rows[i].Code, w.EndLocal, w.StartLocal)
		}
		windows[i] = w
	}

	s.sessions = make([]Session, len(rows))
	s.lines = make([]string, len(rows))
	for i, r := range rows {
		w := windows[i]
		line := wikiLine(s.projectID, labels[i], w.StartLocal, w.EndLocal, r.SpansDays())
		s.sessions[i] = Session{
			Project:    s.projectID,
			Label:      labels[i],
			StartLocal: w.StartLocal,
			EndLocal:   w.EndLocal,
			StartUTC:   w.StartUTC,
			EndUTC:     w.EndUTC,
			SpansDays:  r.SpansDays(),
			WikiLine:   line,
		}
		s.lines[i] = line
	}

	return s, nil
}

// Len returns the number of rows (and sessions) in the schedule.
func (s *Schedule) Len() int { return len(s.rows) }

// ProjectID returns the raw project identifier shared by the batch.
func (s *Schedule) ProjectID() string { return s.projectID }

// Project returns the detected project variant.
func (s *Schedule) Project() project.Project { return s.proj }

// Rows returns the input rows in their original order.
func (s *Schedule) Rows() []Row { return s.rows }

// Sessions returns the derived sessions, index-aligned with Rows.
func (s *Schedule) Sessions() []Session { return s.sessions }

// WikiLines returns the formatted calendar lines in row order.
func (s *Schedule) WikiLines() []string { return s.lines }

// TODO: merging consecutive sessions that share a label into one displayed
// block needs an agreed adjacency predicate (zero-gap only, or any same-day
// pair?) before it can be implemented as a pass over Sessions().
