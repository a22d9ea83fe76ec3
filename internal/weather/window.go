package weather

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

// HistoryWindow describes the trailing range of days fetched from the archive,
// as offsets from today in the location's timezone. {90, 0} is "the last 90 days
// ending today"; {10, 3} is "10 days ago to 3 days ago".
type HistoryWindow struct {
	StartDaysAgo int `validate:"gte=0"`
	EndDaysAgo   int `validate:"gte=0,ltefield=StartDaysAgo"`
}

// DefaultHistoryWindow is the last 90 days ending today.
var DefaultHistoryWindow = HistoryWindow{StartDaysAgo: 90, EndDaysAgo: 0}

// Range returns the inclusive start and end dates (YYYY-MM-DD) of the window
// relative to now, evaluated in loc.
func (w HistoryWindow) Range(now time.Time, loc *time.Location) (string, string, error) {
	if w.StartDaysAgo < 0 || w.EndDaysAgo < 0 || w.EndDaysAgo > w.StartDaysAgo {
		return "", "", fmt.Errorf("invalid history window %d..%d days ago", w.StartDaysAgo, w.EndDaysAgo)
	}
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc)
	start := today.AddDate(0, 0, -w.StartDaysAgo)
	end := today.AddDate(0, 0, -w.EndDaysAgo)
	return start.Format(dateLayout), end.Format(dateLayout), nil
}

// ParseDate parses an ISO YYYY-MM-DD date key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
