package util

import "time"

// isoMillisLayout is ISO-8601 UTC with millisecond precision.
const isoMillisLayout = "2006-01-02T15:04:05.000Z"

func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillisLayout)
}

func NowISO() string {
	return FormatISO(time.Now())
}

// FileTimestamp is the compact timestamp used in export file names.
func FileTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
