// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether t falls on the calendar day of day, evaluated in
// day's location.
func SameDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
