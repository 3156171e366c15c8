// Package calendar validates the shift table and answers how many
// working hours a given day has
package calendar

import (
	"sort"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

// validHours are the shift lengths the plant runs
var validHours = map[int]bool{8: true, 12: true, 16: true, 24: true}

// Calendar is an immutable view over the shift table
type Calendar struct {
	hours map[schedule.Date]int
	start schedule.Date
	end   schedule.Date
}

// New builds a calendar from the shift table, rejecting malformed dates,
// duplicate days and hour values outside {8, 12, 16, 24}
func New(shifts []schedule.Shift) (*Calendar, error) {
	if len(shifts) == 0 {
		return nil, perr.InvalidArgf("empty shift table")
	}

	c := &Calendar{hours: make(map[schedule.Date]int, len(shifts))}
	for _, s := range shifts {
		d, err := schedule.ParseDate(string(s.Date))
		if err != nil {
			return nil, err
		}
		if !validHours[s.Hours] {
			return nil, perr.InvalidArgf("shift %s has %d hours, want one of 8, 12, 16, 24", d, s.Hours)
		}
		if _, dup := c.hours[d]; dup {
			return nil, perr.InvalidArgf("duplicate shift for %s", d)
		}
		c.hours[d] = s.Hours
		if c.start == "" || d.Before(c.start) {
			c.start = d
		}
		if c.end == "" || c.end.Before(d) {
			c.end = d
		}
	}
	return c, nil
}

// Hours returns the working hours of d, or a missing-shift error when
// the table has no entry for that day
func (c *Calendar) Hours(d schedule.Date) (int, error) {
	h, ok := c.hours[d]
	if !ok {
		return 0, perr.MissingShiftf("no shift defined for %s", d)
	}
	return h, nil
}

// Start returns the earliest day in the table
func (c *Calendar) Start() schedule.Date { return c.start }

// End returns the latest day in the table
func (c *Calendar) End() schedule.Date { return c.end }

// Len returns the number of days in the table
func (c *Calendar) Len() int { return len(c.hours) }

// Days returns every day in the table in chronological order
func (c *Calendar) Days() []schedule.Date {
	out := make([]schedule.Date, 0, len(c.hours))
	for d := range c.hours {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
