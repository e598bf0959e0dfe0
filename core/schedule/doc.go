package schedule

// Package schedule interprets the raw grid-encoded observatory schedule.
// A reservation row carries a block base date plus day/slot offsets into a
// multi-day grid; this package translates session codes to descriptive
// labels, resolves grid coordinates to absolute local and UTC instants,
// and formats wiki-ready calendar lines.
