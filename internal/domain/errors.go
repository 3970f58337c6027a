package domain

import "errors"

var (
	// ErrNoDateTime means the page had no booked date/time text at all.
	ErrNoDateTime = errors.New("booked date/time not found")
	// ErrUnparseableDateTime means the text was present but did not match the booking grammar.
	ErrUnparseableDateTime = errors.New("booked date/time is not in the expected format")
	// ErrCalendarURLUnavailable is returned when a link is requested for an event without a start.
	ErrCalendarURLUnavailable = errors.New("calendar link requires a start time")

	ErrDocumentNotReady = errors.New("booking page did not become ready in time")
	ErrNotBookingPage   = errors.New("not a booking detail page")
	ErrDeclined         = errors.New("calendar link declined by user")
	ErrPendingNotFound  = errors.New("pending event not found or expired")
)
