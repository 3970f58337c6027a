// Package booking turns extracted booking fragments into a calendar event
// and a Google Calendar deep link.
package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bookingcal/internal/domain"
)

// Meridiem markers used by the booking page.
const (
	MarkerAM = "오전"
	MarkerPM = "오후"
)

// bookedPattern matches e.g. "2024. 3. 5(화) 오후 2:30" after whitespace normalization.
var bookedPattern = regexp.MustCompile(`^(\d{4})\. (\d{1,2})\. (\d{1,2})\([^)]*\) (` + MarkerAM + `|` + MarkerPM + `) (\d{1,2}):(\d{2})$`)

// NormalizeSpace collapses runs of whitespace into a single space and trims the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseBookedDate parses the booked date/time text into a timestamp in loc.
//
// Empty text yields domain.ErrNoDateTime. Text that does not match the
// booking grammar, or names a date or time that does not exist, yields
// domain.ErrUnparseableDateTime. A nil or unnamed loc means DefaultZoneID.
func ParseBookedDate(text string, loc *time.Location) (time.Time, error) {
	loc = resolveZone(loc)
	cleaned := NormalizeSpace(text)
	if cleaned == "" {
		return time.Time{}, domain.ErrNoDateTime
	}

	m := bookedPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnparseableDateTime, cleaned)
	}

	// The pattern only admits ASCII digits, so Atoi cannot fail.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[5])
	minute, _ := strconv.Atoi(m[6])

	hour = to24Hour(m[4], hour)

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q out of range", domain.ErrUnparseableDateTime, cleaned)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	// time.Date normalizes overflow (Feb 30 -> Mar 1); treat that as a bad date.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", domain.ErrUnparseableDateTime, cleaned)
	}
	return t, nil
}

func to24Hour(marker string, hour int) int {
	switch {
	case marker == MarkerPM && hour >= 1 && hour <= 11:
		return hour + 12
	case marker == MarkerAM && hour == 12:
		return 0
	default:
		return hour
	}
}
