package model

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// MinDate and MaxDate bound every date that survives a save and load.
var (
	MinDate = Date{Year: 1, Month: time.January, Day: 1}
	MaxDate = Date{Year: 9999, Month: time.December, Day: 31}
)

// Date is a calendar date with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func NewDate(year int, month time.Month, day int) (Date, bool) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) Valid() bool {
	if d.Year < MinDate.Year || d.Year > MaxDate.Year {
		return false
	}
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return DateOf(d.time()) == d
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.time().AddDate(0, 0, n))
}

// AddDaysChecked is AddDays that reports false instead of leaving
// [MinDate, MaxDate].
func (d Date) AddDaysChecked(n int) (Date, bool) {
	const maxSpan = 3652059 // days from MinDate to MaxDate
	if n > maxSpan || n < -maxSpan {
		return Date{}, false
	}
	out := d.AddDays(n)
	if out.Compare(MinDate) < 0 || out.Compare(MaxDate) > 0 {
		return Date{}, false
	}
	return out, true
}

func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Short renders the month abbreviation and day, e.g. "Jan 02".
func (d Date) Short() string {
	return fmt.Sprintf("%s %02d", d.Month.String()[:3], d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
