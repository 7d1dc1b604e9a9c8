package service

import "time"

const dayLayout = "2006-01-02"

// DayKey names the local calendar day containing t. Streaks, water counts and
// day-bucketing of entries all use this key.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(dayLayout)
}

func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, value, time.Local)
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
