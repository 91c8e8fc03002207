package rider

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// Window selects the earnings period summed by a totals query.
type Window int

const (
	WindowUnknown Window = iota
	WindowAll
	WindowToday
	WindowWeek
	WindowMonth
)

var windowNames = map[Window]string{
	WindowAll:   "all",
	WindowToday: "today",
	WindowWeek:  "week",
	WindowMonth: "month",
}

func Windows() []Window {
	return []Window{WindowAll, WindowToday, WindowWeek, WindowMonth}
}

func ParseWindow(raw string) (Window, error) {
	for w, name := range windowNames {
		if name == raw {
			return w, nil
		}
	}
	return WindowUnknown, errs.NewValueIsInvalidErrorWithCause("window", fmt.Errorf("%q is not a valid window", raw))
}

func (w Window) Validate() error {
	if _, ok := windowNames[w]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("window", fmt.Errorf("%d is not a valid window", w))
	}
	return nil
}

func (w Window) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return "unknown"
}

// Start returns the inclusive lower bound of the window in now's location.
// Weeks start on Monday. WindowAll has no bound and returns ok == false.
func (w Window) Start(now time.Time) (start time.Time, ok bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch w {
	case WindowToday:
		return midnight, true
	case WindowWeek:
		daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -daysSinceMonday), true
	case WindowMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case WindowAll, WindowUnknown:
		return time.Time{}, false
	}
	return time.Time{}, false
}
