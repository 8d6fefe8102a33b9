package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// DaysBetween returns the absolute day count between two ISO (yyyy-mm-dd)
// dates, rounding partial days up. Missing or malformed dates count as 0.
func DaysBetween(startISO, endISO string) int {
	if startISO == "" || endISO == "" {
		return 0
	}

	start, err := time.Parse(isoDateLayout, startISO)
	if err != nil {
		return 0
	}
	end, err := time.Parse(isoDateLayout, endISO)
	if err != nil {
		return 0
	}

	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ToISO converts a dd-mm-yyyy display date to yyyy-mm-dd. Malformed input
// (wrong segment count, non-numeric segments, year not 4 digits) yields "".
func ToISO(display string) string {
	trimmed := strings.TrimSpace(display)
	if len(trimmed) < 8 {
		return ""
	}

	parts := strings.Split(trimmed, "-")
	if len(parts) != 3 {
		return ""
	}

	if parts[0] == "" || parts[1] == "" || len(parts[2]) != 4 {
		return ""
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ToDisplay converts a yyyy-mm-dd date to the dd-mm-yyyy form shown to
// operators, zero-padding day and month. Malformed input yields "".
func ToDisplay(iso string) string {
	parts := strings.Split(strings.TrimSpace(iso), "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return ""
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%02d-%02d-%04d", day, month, year)
}

// Today returns the current date in display (dd-mm-yyyy) form.
func Today() string {
	return time.Now().Format("02-01-2006")
}
