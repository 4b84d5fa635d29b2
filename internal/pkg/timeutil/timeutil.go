package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	timeOfDayRe = regexp.MustCompile(`(\d{1,2})\s*[h:]\s*(\d{0,2})`)
	bareHourRe  = regexp.MustCompile(`^(\d{1,2})$`)
	hoursRe     = regexp.MustCompile(`(\d+)\s*h`)
	minutesRe   = regexp.MustCompile(`(\d+)\s*(?:min|m)?\s*$`)
)

// ParseTimeOfDay parses a schedule time like "14h30", "14:30" or "8h" into
// minutes since midnight. For ranges ("9h00-10h00") only the start is read.
// The second return value is false when no time could be extracted.
func ParseTimeOfDay(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	// Range start only
	if idx := strings.Index(text, "-"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}

	if m := timeOfDayRe.FindStringSubmatch(text); m != nil {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		minutes := 0
		if m[2] != "" {
			minutes, err = strconv.Atoi(m[2])
			if err != nil {
				return 0, false
			}
		}
		return hours*60 + minutes, true
	}

	if m := bareHourRe.FindStringSubmatch(text); m != nil {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return hours * 60, true
	}

	return 0, false
}

// ParseDuration parses a travel-time duration like "1h30", "90min" or "45"
// into minutes. Hour and minute components are combined when both are present.
func ParseDuration(text string) (int, bool) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return 0, false
	}

	total := 0
	matched := false

	rest := text
	if m := hoursRe.FindStringSubmatchIndex(rest); m != nil {
		hours, err := strconv.Atoi(rest[m[2]:m[3]])
		if err == nil {
			total += hours * 60
			matched = true
		}
		rest = rest[m[1]:]
	}

	if m := minutesRe.FindStringSubmatch(rest); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil {
			total += minutes
			matched = true
		}
	}

	if !matched {
		return 0, false
	}
	return total, true
}

// FormatMinutes renders minutes since midnight as "HHhMM". Negative values
// wrap to the previous day.
func FormatMinutes(minutes int) string {
	for minutes < 0 {
		minutes += minutesPerDay
	}
	minutes %= minutesPerDay
	return fmt.Sprintf("%02dh%02d", minutes/60, minutes%60)
}

// SubtractMinutes subtracts a number of minutes from a schedule time and
// reformats it. The second return value is false when the time is unparsable.
func SubtractMinutes(timeText string, minutes int) (string, bool) {
	parsed, ok := ParseTimeOfDay(timeText)
	if !ok {
		return "", false
	}
	return FormatMinutes(parsed - minutes), true
}

// RoundToQuarterHour rounds a schedule time to the nearest multiple of 15
// minutes. Unparsable input is returned unchanged.
func RoundToQuarterHour(timeText string) string {
	parsed, ok := ParseTimeOfDay(timeText)
	if !ok {
		return timeText
	}
	rounded := int(math.Round(float64(parsed)/15.0)) * 15
	return FormatMinutes(rounded)
}

// WeekdayOf resolves the weekday of an ISO date string ("2006-01-02").
// The second return value is false when the date cannot be parsed.
func WeekdayOf(date string) (time.Weekday, bool) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return time.Sunday, false
	}
	return parsed.Weekday(), true
}
