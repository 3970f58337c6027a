package booking

import (
	"strings"
	"time"

	"bookingcal/internal/domain"
)

// FallbackTitle is used when neither store nor staff name was found.
const FallbackTitle = "네이버 예약"

// Description line labels.
const (
	labelBooked = "예약 일시: "
	labelMenu   = "메뉴: "
	labelStaff  = "담당자: "
	labelSource = "원본 예약 링크: "
)

// Title picks the event title by fixed precedence:
// store+staff+menu, store+staff, store, staff, FallbackTitle.
func Title(raw domain.RawFragments) string {
	switch {
	case raw.StoreName != "" && raw.StaffName != "" && raw.MenuText != "":
		return raw.StoreName + " - " + raw.StaffName + " (" + raw.MenuText + ")"
	case raw.StoreName != "" && raw.StaffName != "":
		return raw.StoreName + " - " + raw.StaffName
	case raw.StoreName != "":
		return raw.StoreName
	case raw.StaffName != "":
		return raw.StaffName
	default:
		return FallbackTitle
	}
}

// Description builds the multi-line event description. It is empty when
// none of the source fragments are present.
func Description(raw domain.RawFragments) string {
	var lines []string
	if raw.BookedText != "" {
		lines = append(lines, labelBooked+raw.BookedText)
	}
	if raw.MenuText != "" {
		lines = append(lines, labelMenu+raw.MenuText)
	}
	if raw.StaffName != "" {
		lines = append(lines, labelStaff+raw.StaffName)
	}
	if raw.SourceURL != "" {
		lines = append(lines, "", labelSource+raw.SourceURL)
	}
	return strings.Join(lines, "\n")
}

// NewEvent assembles the event descriptor. A zero start leaves the event
// without a start time; durationMinutes <= 0 falls back to the default.
func NewEvent(raw domain.RawFragments, start time.Time, durationMinutes int) domain.Event {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	location := raw.AddressText
	if location == "" {
		location = raw.StoreName
	}
	return domain.Event{
		Title:           Title(raw),
		Start:           start,
		DurationMinutes: durationMinutes,
		Location:        location,
		Description:     Description(raw),
		BookedText:      raw.BookedText,
		SourceURL:       raw.SourceURL,
	}
}

// Truncate shortens s to at most maxRunes runes, appending "..." when cut.
func Truncate(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes]) + "..."
}
