package booking

import (
	"time"

	"bookingcal/internal/domain"
)

// Decider is asked once per event whether the calendar link should be produced.
type Decider func(ev domain.Event) bool

// Synthesizer carries the ambient zone and default duration through the pipeline.
type Synthesizer struct {
	Location        *time.Location
	DurationMinutes int
}

// NewSynthesizer returns a Synthesizer for loc. A nil or unnamed loc
// (such as time.Local) means DefaultZoneID.
func NewSynthesizer(loc *time.Location, durationMinutes int) *Synthesizer {
	loc = resolveZone(loc)
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	return &Synthesizer{Location: loc, DurationMinutes: durationMinutes}
}

// Synthesize parses the booked text and builds the event. The event is
// returned even when the date is unusable so callers can still show what was
// found; the error then wraps domain.ErrNoDateTime or domain.ErrUnparseableDateTime.
func (s *Synthesizer) Synthesize(raw domain.RawFragments) (domain.Event, error) {
	start, err := ParseBookedDate(raw.BookedText, s.Location)
	return NewEvent(raw, start, s.DurationMinutes), err
}

// Link encodes ev in the synthesizer's zone.
func (s *Synthesizer) Link(ev domain.Event) (string, error) {
	return CalendarURL(ev, s.Location)
}

// Confirm asks decide before producing the link. A rejection returns domain.ErrDeclined.
func (s *Synthesizer) Confirm(ev domain.Event, decide Decider) (string, error) {
	if !ev.HasStart() {
		return "", domain.ErrCalendarURLUnavailable
	}
	if decide != nil && !decide(ev) {
		return "", domain.ErrDeclined
	}
	return s.Link(ev)
}
