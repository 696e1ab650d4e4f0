package normalize

import (
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"01/02/2006 15:04:05",
	"01/02/2006 3:04:05 PM",
	"2006-01-02",
	"01/02/2006",
}

// WatermarkLayout is how a watermark is rendered in a remote where clause.
const WatermarkLayout = "2006-01-02T15:04:05"

// ParseTimestamp reads a remote modification timestamp. Values without a zone
// are UTC; bare integers are epoch seconds or, when large enough, milliseconds.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n <= 0 {
			return time.Time{}, false
		}

		if n > 1e11 {
			return time.UnixMilli(n).UTC(), true
		}

		return time.Unix(n, 0).UTC(), true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// FormatWatermark renders t for the remote filter, in UTC and truncated to seconds.
func FormatWatermark(t time.Time) string {
	return t.UTC().Format(WatermarkLayout)
}
