package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is the time bucket a record belongs to: a year, or a year-month.
// Month is 0 for annual periods.
type Period struct {
	Year  int
	Month int
}

// String renders the canonical form: "2016" or "2016-03".
func (p Period) String() string {
	if p.Month == 0 {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Less orders periods chronologically; annual sorts before any month of the same year.
func (p Period) Less(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// MarshalJSON renders the period as its canonical string.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

// ParsePeriod parses the canonical period forms "2016" and "2016-03".
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Period{}, fmt.Errorf("empty period")
	}

	yearPart := s
	monthPart := ""
	if i := strings.IndexByte(s, '-'); i >= 0 {
		yearPart = s[:i]
		monthPart = s[i+1:]
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return Period{}, fmt.Errorf("invalid period %q", s)
	}

	p := Period{Year: year}
	if monthPart != "" {
		month, err := strconv.Atoi(monthPart)
		if err != nil || month < 1 || month > 12 {
			return Period{}, fmt.Errorf("invalid period %q", s)
		}
		p.Month = month
	}
	return p, nil
}

// Window bounds the years a normalized dataset may contain, inclusive.
type Window struct {
	From int
	To   int
}

// Contains reports whether the period's year falls inside the window.
func (w Window) Contains(p Period) bool {
	return p.Year >= w.From && p.Year <= w.To
}
