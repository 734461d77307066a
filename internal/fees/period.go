package fees

import "time"

// DefaultDueDay is applied when a team has no fee config row at all.
const DefaultDueDay = 10

// Period is a billing month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PeriodOf returns the billing period the instant t falls in.
func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// IsZero reports whether p was never set.
func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// Next returns the following month, rolling the year over December.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Contains reports whether t falls inside the period's month.
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// DueDate builds the due date for the period at the given day of month.
// Days past the end of the month normalize forward (Feb 31 -> Mar 2/3),
// matching how the product has always constructed these dates.
func (p Period) DueDate(day int, loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, loc)
}

// DaysBetween returns the whole days from a to b, flooring the difference.
// Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}
