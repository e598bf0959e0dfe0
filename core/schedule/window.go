package schedule

import (
	"fmt"
	"time"
)

// dateLayout matches the feed's block base dates, e.g. "Jul_11_20".
const dateLayout = "Jan_02_06"

// Default timezone identifiers. The observatory publishes its grid in local
// civil time; UTC is kept alongside for cross-site coordination.
const (
	DefaultLocalZone     = "America/Puerto_Rico"
	DefaultUniversalZone = "UTC"
)

// Zones carries the two timezones every observation window is expressed in.
type Zones struct {
	Local     *time.Location
	Universal *time.Location
}

// LoadZones resolves timezone identifiers into Zones. Empty identifiers fall
// back to the defaults above.
func LoadZones(local, universal string) (Zones, error) {
	if local == "" {
		local = DefaultLocalZone
	}
	if universal == "" {
		universal = DefaultUniversalZone
	}
	loc, err := time.LoadLocation(local)
	if err != nil {
		return Zones{}, fmt.Errorf("load local zone %q: %w", local, err)
	}
	utc, err := time.LoadLocation(universal)
	if err != nil {
		return Zones{}, fmt.Errorf("load universal zone %q: %w", universal, err)
	}
	return Zones{Local: loc, Universal: utc}, nil
}

// Window is a resolved observation interval. The UTC pair denotes the same
// absolute instants as the local pair, never an independent computation.
type Window struct {
	StartLocal time.Time
	EndLocal   time.Time
	StartUTC   time.Time
	EndUTC     time.Time
}

// resolveWindow converts one row's grid coordinates into absolute instants.
// The block base date is interpreted as local civil midnight; both grid
// references are resolved against it and then converted, instant-preserving,
// to the universal zone.
func resolveWindow(r Row, zones Zones) (Window, error) {
	midnight, err := time.ParseInLocation(dateLayout, r.Date, zones.Local)
	if err != nil {
		return Window{}, fmt.Errorf("parse block date %q: %w", r.Date, err)
	}
	start := r.Begin.Resolve(midnight)
	end := r.End.Resolve(midnight)
	return Window{
		StartLocal: start,
		EndLocal:   end,
		StartUTC:   start.In(zones.Universal),
		EndUTC:     end.In(zones.Universal),
	}, nil
}
