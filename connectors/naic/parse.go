package naic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pulsarops/aosched/core/schedule"
)

// Raw feed column positions (0-based). The CGI emits 17 whitespace-separated
// columns per reservation; the ones not listed here (LST range, time system,
// total hours) are not needed to reconstruct the observation window.
const (
	colDate    = 0
	colProject = 1
	colCode    = 5
	colBegDay  = 12
	colEndDay  = 13
	colBegSlot = 14
	colEndSlot = 15

	recordFields = 17
)

// ParseTable extracts reservation rows from the raw schedrawd output. The
// body is an HTML page wrapping plain-text records; markup is stripped and
// every line that looks like a reservation record (17 fields, Mon_DD_YY
// first field) is parsed. Other lines are skipped, so headers and stray
// markup do not poison the batch, but a malformed grid coordinate inside a
// record is an error.
func ParseTable(body []byte) ([]schedule.Row, error) {
	text := stripTags(string(body))

	var rows []schedule.Row
	for n, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < recordFields || !looksLikeDate(fields[colDate]) {
			continue
		}

		begin, err := parseGridRef(fields[colBegDay], fields[colBegSlot])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		end, err := parseGridRef(fields[colEndDay], fields[colEndSlot])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}

		rows = append(rows, schedule.Row{
			Date:    fields[colDate],
			Project: fields[colProject],
			Code:    fields[colCode],
			Begin:   begin,
			End:     end,
		})
	}
	return rows, nil
}

func parseGridRef(day, slot string) (schedule.GridRef, error) {
	d, err := strconv.ParseFloat(day, 64)
	if err != nil {
		return schedule.GridRef{}, fmt.Errorf("bad day offset %q: %w", day, err)
	}
	s, err := strconv.ParseFloat(slot, 64)
	if err != nil {
		return schedule.GridRef{}, fmt.Errorf("bad slot offset %q: %w", slot, err)
	}
	return schedule.GridRef{Day: d, Slot: s}, nil
}

// looksLikeDate matches the feed's Mon_DD_YY block dates, e.g. "Jul_11_20".
func looksLikeDate(s string) bool {
	parts := strings.Split(s, "_")
	if len(parts) != 3 || len(parts[0]) != 3 {
		return false
	}
	for _, p := range parts[1:] {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}

// stripTags removes HTML markup, keeping only text content. The feed is a
// plain-text table wrapped in minimal HTML; anything fancier than skipping
// tag runs is unnecessary.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
