package booking

import (
	"net/url"
	"strings"
	"time"

	"bookingcal/internal/domain"
)

// CalendarBaseURL is the Google Calendar event template endpoint.
const CalendarBaseURL = "https://calendar.google.com/calendar/render"

// calendarTimeLayout is Google's floating local time format; no trailing Z.
const calendarTimeLayout = "20060102T150405"

// FormatCalendarTime renders t in loc as YYYYMMDDTHHMMSS.
func FormatCalendarTime(t time.Time, loc *time.Location) string {
	return t.In(resolveZone(loc)).Format(calendarTimeLayout)
}

// CalendarURL encodes ev as a Google Calendar "add event" link. loc is the
// zone the start was parsed in; its IANA name is sent as ctz. A nil or
// unnamed loc means DefaultZoneID.
func CalendarURL(ev domain.Event, loc *time.Location) (string, error) {
	if !ev.HasStart() {
		return "", domain.ErrCalendarURLUnavailable
	}
	loc = resolveZone(loc)
	if ev.DurationMinutes <= 0 {
		ev.DurationMinutes = domain.DefaultDurationMinutes
	}
	end := ev.End()

	params := []queryParam{
		{"action", "TEMPLATE"},
		{"text", ev.Title},
		{"dates", FormatCalendarTime(ev.Start, loc) + "/" + FormatCalendarTime(end, loc)},
		{"location", ev.Location},
		{"details", ev.Description},
		{"ctz", loc.String()},
	}
	return CalendarBaseURL + "?" + encodeQuery(params), nil
}

type queryParam struct {
	key, value string
}

// encodeQuery form-encodes params keeping their order; url.Values.Encode would sort them.
func encodeQuery(params []queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}
