// Package timeutil parses the calendar windows used to limit listings, such
// as "30d" or "1y6mo".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]string{
		"d":      "d",
		"day":    "d",
		"days":   "d",
		"w":      "w",
		"wk":     "w",
		"wks":    "w",
		"week":   "w",
		"weeks":  "w",
		"mo":     "mo",
		"mon":    "mo",
		"month":  "mo",
		"months": "mo",
		"y":      "y",
		"yr":     "y",
		"yrs":    "y",
		"year":   "y",
		"years":  "y",
	}
)

// Window is a calendar span. Months and years follow the calendar rather
// than a fixed number of days.
type Window struct {
	Years  int
	Months int
	Days   int
}

// ParseWindow parses strings such as "2w", "3mo" or "1y6mo2d". Segments add
// up; weeks count as seven days.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return Window{}, fmt.Errorf("empty window")
	}

	var w Window
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		switch unitMap[matches[2]] {
		case "d":
			w.Days += value
		case "w":
			w.Days += 7 * value
		case "mo":
			w.Months += value
		case "y":
			w.Years += value
		default:
			return Window{}, fmt.Errorf("unsupported window unit %q", matches[2])
		}
		remaining = remaining[len(matches[0]):]
	}

	if w.IsZero() {
		return Window{}, fmt.Errorf("window must be greater than zero")
	}
	return w, nil
}

func (w Window) IsZero() bool {
	return w.Years == 0 && w.Months == 0 && w.Days == 0
}

// Start is the first day inside the window ending on today, at midnight.
func (w Window) Start(today time.Time) time.Time {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return day.AddDate(-w.Years, -w.Months, -w.Days)
}

// String renders the window compactly, e.g. "1y6mo2d".
func (w Window) String() string {
	if w.IsZero() {
		return "0d"
	}
	var parts []string
	if w.Years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", w.Years))
	}
	if w.Months > 0 {
		parts = append(parts, fmt.Sprintf("%dmo", w.Months))
	}
	if w.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", w.Days))
	}
	return strings.Join(parts, "")
}
