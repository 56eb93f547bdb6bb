package utils

import "time"

// ISOMillis is the timestamp layout stored on every item. Fixed width keeps
// lexicographic order equal to chronological order inside sort keys.
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// FormatISO formats t in UTC with millisecond precision
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}
