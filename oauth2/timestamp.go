package oauth2

import (
	"errors"
	"time"
)

// TimestampLayout is the textual form of expired_at shared by the engine and
// every token store: naive local time with second precision.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrNotFound is returned by stores when a client or token row does not exist.
var ErrNotFound = errors.New("not found")

// FormatTimestamp renders t in local time using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

// ParseTimestamp parses a TimestampLayout value as local time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// ExpiredBy reports whether a stored expired_at value is at or before now.
// TimestampLayout sorts lexically, so stores can apply the same comparison
// in SQL or on sorted keys.
func ExpiredBy(expiredAt string, now time.Time) bool {
	return expiredAt <= FormatTimestamp(now)
}
