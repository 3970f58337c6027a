package domain

import "time"

// DefaultDurationMinutes is used when an event is built without an explicit duration.
const DefaultDurationMinutes = 60

// RawFragments is the unvalidated text pulled out of a booking confirmation page.
// Every field may be empty; nothing here has been checked for format.
type RawFragments struct {
	// StoreName is the business name shown in the page header.
	StoreName string `json:"store_name"`

	// StaffName is the designer/staff member the booking was made with.
	StaffName string `json:"staff_name"`

	// MenuText is the booked menu or service.
	MenuText string `json:"menu_text"`

	// BookedText is the booked date/time exactly as the page renders it,
	// e.g. "2024. 3. 5(화) 오후 2:30".
	BookedText string `json:"booked_text"`

	// AddressText is the store address with copy-button noise removed.
	AddressText string `json:"address_text"`

	// SourceURL is the page address without its fragment identifier.
	SourceURL string `json:"source_url"`
}

// Event is the normalized calendar event synthesized from RawFragments.
type Event struct {
	// Title is never empty; see booking.NewEvent for the precedence rules.
	Title string `json:"title"`

	// Start is the zero time when the booked text could not be parsed.
	Start time.Time `json:"start"`

	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location"`
	Description     string `json:"description"`

	// BookedText and SourceURL are kept for previews.
	BookedText string `json:"booked_text"`
	SourceURL  string `json:"source_url"`
}

// HasStart reports whether the event carries a usable start timestamp.
func (e Event) HasStart() bool {
	return !e.Start.IsZero()
}

// End returns Start plus the event duration.
func (e Event) End() time.Time {
	return e.Start.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// PendingEvent is an event waiting for the user to accept or reject it.
type PendingEvent struct {
	ID     string `json:"id"`
	UserID int64  `json:"user_id"`
	Event  Event  `json:"event"`

	// CreatedAt is when the preview was shown to the user.
	CreatedAt time.Time `json:"created_at"`
}

// SavedEvent is an event the user accepted, together with the link that was issued.
type SavedEvent struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Event       Event     `json:"event"`
	CalendarURL string    `json:"calendar_url"`
	Timestamp   time.Time `json:"timestamp"`
}
