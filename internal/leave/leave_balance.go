package leave

import "time"

// ComputeAbsenceDays counts the calendar days from start to end inclusive.
// Time of day is ignored.
func ComputeAbsenceDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
