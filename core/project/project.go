package project

import "strings"

// Project identifies one of the observing programs whose schedule grids we
// know how to interpret. The zero value is Unknown.
type Project int

const (
	// Unknown covers every project identifier we have no code table for.
	// Schedules for unknown projects are still processed; their raw session
	// codes pass through untranslated.
	Unknown Project = iota
	// P2780 is the timing program whose sessions are lettered A-D.
	P2780
	// P2945 is the timing program whose sessions are named after source
	// right ascensions (0030, 1640, ...).
	P2945
)

// codesP2780 maps raw grid session codes to P2780 session letters.
var codesP2780 = map[string]string{
	"(a)": "A",
	"(b)": "B",
	"(c)": "C",
	"(d)": "D",
}

// codesP2945 maps raw grid session codes to P2945 source names. Composite
// codes denote two back-to-back sessions scheduled as one block.
var codesP2945 = map[string]string{
	"(a)":     "0030",
	"(b)":     "1640",
	"(c)":     "1713",
	"(d)":     "2043",
	"(e)":     "2317",
	"(b)+(c)": "1640/1713",
	"(e)+(a)": "2317/0030",
}

// Detect classifies a free-text project identifier as it appears in the raw
// schedule (e.g. "P2780").
func Detect(id string) Project {
	switch {
	case strings.Contains(id, "2780"):
		return P2780
	case strings.Contains(id, "2945"):
		return P2945
	default:
		return Unknown
	}
}

// Codes returns the session code table for p, or nil for Unknown.
func (p Project) Codes() map[string]string {
	switch p {
	case P2780:
		return codesP2780
	case P2945:
		return codesP2945
	default:
		return nil
	}
}

func (p Project) String() string {
	switch p {
	case P2780:
		return "P2780"
	case P2945:
		return "P2945"
	default:
		return "unknown"
	}
}
