package calendar

import "time"

// DaysPerWeek is the fixed length of a ledger week.
const DaysPerWeek = 7

// Week is a Monday-first window of seven consecutive day keys.
type Week [DaysPerWeek]DayKey

// WeekOf computes the Monday-start week containing anchor.
// Sunday anchors resolve to the Monday six days earlier.
func WeekOf(anchor time.Time) Week {
	offset := 1 - int(anchor.Weekday())
	if anchor.Weekday() == time.Sunday {
		offset = -6
	}
	monday := anchor.AddDate(0, 0, offset)

	var w Week
	for i := 0; i < DaysPerWeek; i++ {
		w[i] = FromTime(monday.AddDate(0, 0, i))
	}
	return w
}

// WeekOfKey computes the week window containing the given day.
func WeekOfKey(k DayKey) Week {
	return WeekOf(k.Time(time.UTC))
}

// Start returns the Monday of the window.
func (w Week) Start() DayKey { return w[0] }

// End returns the Sunday of the window.
func (w Week) End() DayKey { return w[DaysPerWeek-1] }

// Contains reports whether k falls inside the window.
func (w Week) Contains(k DayKey) bool {
	return !k.Before(w.Start()) && !k.After(w.End())
}

// IndexOf returns the 0-based position of k in the window, or -1.
func (w Week) IndexOf(k DayKey) int {
	for i, d := range w {
		if d == k {
			return i
		}
	}
	return -1
}

// Prev returns the window seven days earlier.
func (w Week) Prev() Week { return WeekOfKey(w.Start().AddDays(-DaysPerWeek)) }

// Next returns the window seven days later.
func (w Week) Next() Week { return WeekOfKey(w.Start().AddDays(DaysPerWeek)) }
