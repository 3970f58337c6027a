// Package app wires page loading, extraction and event synthesis into the
// user-facing booking-to-calendar flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bookingcal/internal/booking"
	"bookingcal/internal/domain"
	"bookingcal/internal/extract"
	"bookingcal/internal/metrics"
	"bookingcal/internal/scraper"
	"bookingcal/internal/storage"
)

const bookingHost = "booking.naver.com"

var bookingPaths = []string{"/my/bookings/", "/my/share/bookings/"}

// IsBookingDetailURL reports whether rawURL points at a booking detail page.
func IsBookingDetailURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	if !strings.EqualFold(u.Hostname(), bookingHost) && !strings.EqualFold(u.Hostname(), "m."+bookingHost) {
		return false
	}
	for _, p := range bookingPaths {
		if strings.HasPrefix(u.Path, p) && len(u.Path) > len(p) {
			return true
		}
	}
	return false
}

// FindBookingURL returns the first booking detail URL in free text.
func FindBookingURL(text string) (string, bool) {
	for _, field := range strings.Fields(text) {
		field = strings.Trim(field, "<>()[]\"'")
		if IsBookingDetailURL(field) {
			return field, true
		}
	}
	return "", false
}

// Service runs the booking-to-calendar flow.
type Service struct {
	scraper    scraper.Scraper
	synth      *booking.Synthesizer
	repo       storage.Repository
	metrics    *metrics.Metrics
	selectors  extract.Selectors
	pendingTTL time.Duration
	log        logrus.FieldLogger
}

// Options configures a Service. Repo may be nil for one-shot use via Link.
type Options struct {
	Scraper     scraper.Scraper
	Synthesizer *booking.Synthesizer
	Repo        storage.Repository
	Metrics     *metrics.Metrics
	Selectors   extract.Selectors
	PendingTTL  time.Duration
}

// NewService creates the application service.
func NewService(opts Options, logger logrus.FieldLogger) *Service {
	return &Service{
		scraper:    opts.Scraper,
		synth:      opts.Synthesizer,
		repo:       opts.Repo,
		metrics:    opts.Metrics,
		selectors:  opts.Selectors.WithDefaults(),
		pendingTTL: opts.PendingTTL,
		log:        logger.WithField("component", "service"),
	}
}

// Extract loads pageURL and returns the raw fragments together with the
// synthesized event. The event is returned alongside date errors so callers
// can still show what was found.
func (s *Service) Extract(ctx context.Context, pageURL string) (domain.RawFragments, domain.Event, error) {
	log := s.log.WithField("url", pageURL)

	if !IsBookingDetailURL(pageURL) {
		s.count(metrics.OutcomeNotBookingPage)
		return domain.RawFragments{}, domain.Event{}, fmt.Errorf("%w: %s", domain.ErrNotBookingPage, pageURL)
	}

	started := time.Now()
	page, err := s.scraper.Fetch(ctx, pageURL)
	if s.metrics != nil {
		s.metrics.ObserveFetch(time.Since(started).Seconds())
	}
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotReady) {
			s.count(metrics.OutcomeNotReady)
		} else {
			s.count(metrics.OutcomeFetchFailed)
		}
		return domain.RawFragments{}, domain.Event{}, err
	}

	pageAddr := page.URL
	if pageAddr == "" {
		pageAddr = pageURL
	}
	raw, err := extract.ExtractHTML(page.HTML, pageAddr, s.selectors)
	if err != nil {
		s.count(metrics.OutcomeExtractFailed)
		return domain.RawFragments{}, domain.Event{}, err
	}

	ev, err := s.synth.Synthesize(raw)
	switch {
	case errors.Is(err, domain.ErrNoDateTime):
		s.count(metrics.OutcomeNoDateTime)
		log.Warn("Booked date/time not found on page")
	case errors.Is(err, domain.ErrUnparseableDateTime):
		s.count(metrics.OutcomeUnparseable)
		log.WithField("booked_text", raw.BookedText).Warn("Booked date/time could not be parsed")
	case err == nil:
		s.count(metrics.OutcomeOK)
		log.WithFields(logrus.Fields{
			"title": ev.Title,
			"start": ev.Start,
		}).Info("Booking extracted")
	}
	return raw, ev, err
}

// Prepare extracts the booking and stores it as a pending event for userID.
// Nothing is stored when the date is unusable.
func (s *Service) Prepare(ctx context.Context, userID int64, pageURL string) (domain.PendingEvent, error) {
	if s.repo == nil {
		return domain.PendingEvent{}, errors.New("service has no repository")
	}
	_, ev, err := s.Extract(ctx, pageURL)
	if err != nil {
		return domain.PendingEvent{}, err
	}

	pending := domain.PendingEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Event:     ev,
		CreatedAt: time.Now(),
	}
	if err := s.repo.SavePending(ctx, pending, s.pendingTTL); err != nil {
		return domain.PendingEvent{}, err
	}
	return pending, nil
}

// Resolve consumes a pending event. On acceptance the event is recorded in
// the user's history and the calendar link returned; on rejection
// domain.ErrDeclined is returned. Either way the pending event is removed.
func (s *Service) Resolve(ctx context.Context, userID int64, id string, decide booking.Decider) (string, error) {
	if s.repo == nil {
		return "", errors.New("service has no repository")
	}
	log := s.log.WithFields(logrus.Fields{"user_id": userID, "pending_id": id})

	pending, err := s.repo.GetPending(ctx, userID, id)
	if err != nil {
		return "", err
	}

	link, err := s.synth.Confirm(pending.Event, decide)
	if delErr := s.repo.DeletePending(ctx, userID, id); delErr != nil {
		log.WithError(delErr).Warn("Failed to remove resolved pending event")
	}
	if err != nil {
		if errors.Is(err, domain.ErrDeclined) {
			s.decision(metrics.DecisionDeclined)
			log.Info("User declined calendar link")
		}
		return "", err
	}
	s.decision(metrics.DecisionAccepted)

	saved := domain.SavedEvent{
		ID:          pending.ID,
		UserID:      userID,
		Event:       pending.Event,
		CalendarURL: link,
		Timestamp:   time.Now(),
	}
	if err := s.repo.SaveEvent(ctx, saved); err != nil {
		// The link is still valid; history is best effort.
		log.WithError(err).Warn("Failed to record accepted event")
	}
	return link, nil
}

// Link runs the whole flow synchronously without storage.
func (s *Service) Link(ctx context.Context, pageURL string, decide booking.Decider) (string, error) {
	_, ev, err := s.Extract(ctx, pageURL)
	if err != nil {
		return "", err
	}
	link, err := s.synth.Confirm(ev, decide)
	switch {
	case errors.Is(err, domain.ErrDeclined):
		s.decision(metrics.DecisionDeclined)
	case err == nil:
		s.decision(metrics.DecisionAccepted)
	}
	return link, err
}

// History returns the user's accepted events, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]domain.SavedEvent, error) {
	if s.repo == nil {
		return nil, errors.New("service has no repository")
	}
	return s.repo.GetEventsByUser(ctx, userID)
}

// Location is the zone events are read and written in.
func (s *Service) Location() *time.Location {
	return s.synth.Location
}

func (s *Service) count(outcome string) {
	if s.metrics != nil {
		s.metrics.IncExtraction(outcome)
	}
}

func (s *Service) decision(d string) {
	if s.metrics != nil {
		s.metrics.IncDecision(d)
	}
}
