package schedule

import (
	"math"
	"time"
)

// slotMinutes is the grid's row resolution: one row is a 15-minute slot.
const slotMinutes = 15

// GridRef locates one edge of a reservation on the raw schedule grid.
// Day counts calendar days from the block base date (grid column) and Slot
// counts 15-minute increments from local midnight of that day (grid row).
// The raw feed only ever carries integers, but the arithmetic is defined for
// any finite real value, so both fields are float64.
type GridRef struct {
	Day  float64 `json:"day"`
	Slot float64 `json:"slot"`
}

// Resolve converts the grid reference to an absolute instant, anchored at
// the block's local civil midnight. The offsets are applied as wall-clock
// calendar arithmetic: time.Date normalizes the overflowing seconds field
// in midnight's location, so a daylight-saving transition inside the block
// is resolved by the zone's own rules rather than by naive duration math.
func (g GridRef) Resolve(midnight time.Time) time.Time {
	sec := math.Round((g.Day*24*60 + g.Slot*slotMinutes) * 60)
	return time.Date(
		midnight.Year(), midnight.Month(), midnight.Day(),
		0, 0, int(sec), 0, midnight.Location(),
	)
}

// Row is one reservation block exactly as extracted from the raw schedule
// table. Rows are immutable once constructed; a Schedule never reorders or
// rewrites them.
type Row struct {
	// Date is the block base date in the feed's Mon_DD_YY form, e.g. "Jul_11_20".
	Date string `json:"date"`
	// Project is the raw project identifier, e.g. "P2780".
	Project string `json:"project"`
	// Code is the raw session code, e.g. "(d)" or the composite "(e)+(a)".
	Code  string  `json:"code"`
	Begin GridRef `json:"begin"`
	End   GridRef `json:"end"`
}

// SpansDays reports whether the reservation's end falls on a different grid
// column (calendar day) than its start.
func (r Row) SpansDays() bool {
	return r.Begin.Day != r.End.Day
}
