package util

import "time"

// DateFormat is the storage format for calendar dates.
const DateFormat = time.DateOnly

// SpanishWeekdays lists weekday names starting on Monday.
var SpanishWeekdays = []string{"Lunes", "Martes", "Miercoles", "Jueves", "Viernes", "Sabado", "Domingo"}

// WeekStart returns midnight UTC of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayDate returns the date of the plan day at index, counting from the
// week start.
func DayDate(weekStart time.Time, index int) time.Time {
	return weekStart.AddDate(0, 0, index)
}

// FormatDate formats t with layout, falling back to DateFormat.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DateFormat
	}
	return t.Format(layout)
}
