package extensions

import (
	"errors"
	"strings"
	"time"
)

const (
	displayLayout  = "Monday, January 2, 2006 at 3:04 PM"
	editFormLayout = "2006-01-02T15:04"
)

// accepted layouts for submitted dates, datetime-local first.
var submittedDateLayouts = []string{
	editFormLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC3339,
}

var ErrInvalidDate = errors.New("invalid date")

// FormatForDisplay renders an event date for detail and list pages.
func FormatForDisplay(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(displayLayout)
}

// FormatForEditForm renders an event date as a datetime-local input value.
func FormatForEditForm(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(editFormLayout)
}

// ParseSubmittedDate keeps the submitted wall clock as is. Dates without a
// zone come back in UTC.
func ParseSubmittedDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range submittedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
