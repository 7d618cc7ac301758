// Package quickdate parses the abbreviated date forms accepted by the task
// editor: +N, -N, MMDD and YYYYMMDD.
package quickdate

import (
	"strconv"
	"time"

	"github.com/frogpad/frogpad/internal/model"
)

type Clock interface {
	Today() model.Date
}

// SystemClock reports the local calendar date.
type SystemClock struct{}

func (SystemClock) Today() model.Date { return model.DateOf(time.Now()) }

// FixedClock always reports the same date.
type FixedClock model.Date

func (c FixedClock) Today() model.Date { return model.Date(c) }

// Parse returns the date described by input relative to clock's today.
// Any malformed or out-of-range input yields ok == false.
func Parse(input string, clock Clock) (model.Date, bool) {
	if input == "" {
		return model.Date{}, false
	}
	today := clock.Today()

	switch input[0] {
	case '+':
		n, ok := digits(input[1:])
		if !ok {
			return model.Date{}, false
		}
		return today.AddDaysChecked(n)
	case '-':
		n, ok := digits(input[1:])
		if !ok {
			return model.Date{}, false
		}
		return today.AddDaysChecked(-n)
	}

	switch len(input) {
	case 4:
		month, ok1 := digits(input[0:2])
		day, ok2 := digits(input[2:4])
		if !ok1 || !ok2 {
			return model.Date{}, false
		}
		return model.NewDate(today.Year, time.Month(month), day)
	case 8:
		year, ok1 := digits(input[0:4])
		month, ok2 := digits(input[4:6])
		day, ok3 := digits(input[6:8])
		if !ok1 || !ok2 || !ok3 {
			return model.Date{}, false
		}
		return model.NewDate(year, time.Month(month), day)
	default:
		return model.Date{}, false
	}
}

// digits parses a non-empty run of ASCII digits. Signs are rejected so that
// "+-3" or "12+4" never partially match.
func digits(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
