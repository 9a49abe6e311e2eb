package apitype

import (
	"fmt"
	"time"
)

// PeriodKey identifies a calendar month or, when Month is zero, a whole year.
type PeriodKey struct {
	Year  int
	Month time.Month
}

func MonthKeyOf(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year(), Month: t.Month()}
}

func YearKeyOf(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year()}
}

func (s PeriodKey) IsYear() bool {
	return s.Month == 0
}

// Before reports whether s is older than other.
func (s PeriodKey) Before(other PeriodKey) bool {
	if s.Year != other.Year {
		return s.Year < other.Year
	}
	return s.Month < other.Month
}

func (s PeriodKey) String() string {
	if s.IsYear() {
		return fmt.Sprintf("%04d", s.Year)
	}
	return fmt.Sprintf("%04d-%02d", s.Year, int(s.Month))
}

type PeriodCount struct {
	Period PeriodKey
	Count  int
}
