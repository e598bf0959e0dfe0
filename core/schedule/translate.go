package schedule

import (
	"fmt"

	"github.com/pulsarops/aosched/core/project"
)

// UnknownCodeError reports a raw session code that is missing from the
// selected project's code table. There is no fallback label: a silent gap
// would drop information from the published schedule, so construction fails.
type UnknownCodeError struct {
	Project project.Project
	Code    string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("project %s has no session code %q", e.Project, e.Code)
}

// translate maps every row's raw session code to its descriptive label,
// index-aligned with rows. Unknown projects have no code table; their rows
// keep the raw code as the only available identifier.
func translate(proj project.Project, rows []Row) ([]string, error) {
	codes := proj.Codes()
	labels := make([]string, len(rows))
	for i, r := range rows {
		if codes == nil {
			labels[i] = r.Code
			continue
		}
		label, ok := codes[r.Code]
		if !ok {
			return nil, &UnknownCodeError{Project: proj, Code: r.Code}
		}
		labels[i] = label
	}
	return labels, nil
}
