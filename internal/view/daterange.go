package view

import "time"

// DateLayout is the calendar-date format accepted for range bounds.
const DateLayout = "2006-01-02"

// DateRange bounds a timestamp by calendar days. From includes its whole day
// from 00:00, To includes its whole day up to 23:59:59.999. Empty bounds are
// open. A bound that does not parse excludes every row.
type DateRange struct {
	From     string
	To       string
	Location *time.Location
}

// IsZero reports whether the range places no constraint.
func (r DateRange) IsZero() bool {
	return r.From == "" && r.To == ""
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}

	if r.From != "" {
		from, err := time.ParseInLocation(DateLayout, r.From, loc)
		if err != nil {
			return false
		}
		if t.Before(from) {
			return false
		}
	}

	if r.To != "" {
		to, err := time.ParseInLocation(DateLayout, r.To, loc)
		if err != nil {
			return false
		}
		end := endOfDay(to)
		if t.After(end) {
			return false
		}
	}
	return true
}

func endOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), day.Location())
}
