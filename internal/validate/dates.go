package validate

import (
	"strings"
	"time"
)

const calendarDateFormat = "calendar-date"

// dateLayouts are the shapes a due date may be typed in. The date input of
// the todo form produces the first one; the rest cover pasted values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 02 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
}

// ParseDate parses a due date in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isCalendarDate(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		// Non-strings are left to the "type" keyword.
		return true
	}
	_, ok = ParseDate(s)
	return ok
}
