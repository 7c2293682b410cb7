package synthesis

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	textualDate = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),?\s+(\d{4})$`)
	numericDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)

	months = map[string]time.Month{
		"january": time.January, "february": time.February, "march": time.March,
		"april": time.April, "may": time.May, "june": time.June,
		"july": time.July, "august": time.August, "september": time.September,
		"october": time.October, "november": time.November, "december": time.December,
	}
)

// ParseDate parses a date candidate found by segmentation ("March 3, 1987" or
// "3/3/87"). The second return value is false when the candidate is empty or
// unparseable, in which case now's calendar date is returned.
//
// Two-digit years resolve to the most recent matching year not after now. Day overflow
// rolls into the next month (2/30/1990 is March 2).
func ParseDate(candidate string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return today, false
	}

	var (
		year, day int
		month     time.Month
	)

	if m := textualDate.FindStringSubmatch(candidate); m != nil {
		mo, ok := months[strings.ToLower(m[1])]
		if !ok {
			return today, false
		}

		month = mo
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
	} else if m := numericDate.FindStringSubmatch(candidate); m != nil {
		mo, _ := strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])

		if mo < 1 || mo > 12 {
			return today, false
		}

		month = time.Month(mo)

		switch len(m[3]) {
		case 2:
			year += 2000
			if year > now.Year() {
				year -= 100
			}
		case 3:
			return today, false
		}
	} else {
		return today, false
	}

	if day < 1 || day > 31 {
		return today, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// pubDateLayouts accept RFC 822 dates with or without the weekday and with a one or
// two digit day.
var pubDateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParsePubDate parses an RSS publication date and returns its UTC calendar date.
func ParsePubDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)

	for _, layout := range pubDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		t = t.UTC()

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	today := now.UTC()

	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC), false
}
