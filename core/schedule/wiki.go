package schedule

import (
	"fmt"
	"time"
)

// Wiki line time layouts. The end time drops its date unless the session
// crosses into another grid column (calendar day).
const (
	wikiStartLayout   = "2006 Jan 02: 15:04"
	wikiEndLayout     = "15:04"
	wikiEndDateLayout = "Jan 02: 15:04"
)

// wikiLine renders one session as a line ready to paste into the wiki
// schedule, always in the local zone:
//
//	2020 Jul 11: 08:45 - 15:45: P2780 (Session D): <br>
//	2020 Jul 12: 21:15 - Jul 13: 06:30: P2780 (Session C): <br>
func wikiLine(projectID, label string, start, end time.Time, spansDays bool) string {
	endStr := end.Format(wikiEndLayout)
	if spansDays {
		endStr = end.Format(wikiEndDateLayout)
	}
	return fmt.Sprintf("%s - %s: %s (Session %s): <br>", start.Format(wikiStartLayout), endStr, projectID, label)
}
