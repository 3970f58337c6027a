package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"bookingcal/internal/domain"
)

// DefaultReadyTimeout bounds the wait for the ready selector.
const DefaultReadyTimeout = 10 * time.Second

// RodScraper implements the Scraper interface using the rod library.
type RodScraper struct {
	log           logrus.FieldLogger
	browserBin    string
	readySelector string
	readyTimeout  time.Duration
}

// NewRodScraper creates a scraper that waits for readySelector before
// returning a page. An empty browserBin means rod looks up a local browser.
func NewRodScraper(logger logrus.FieldLogger, browserBin, readySelector string, readyTimeout time.Duration) *RodScraper {
	if readyTimeout <= 0 {
		readyTimeout = DefaultReadyTimeout
	}
	return &RodScraper{
		log:           logger.WithField("component", "scraper"),
		browserBin:    browserBin,
		readySelector: readySelector,
		readyTimeout:  readyTimeout,
	}
}

// Fetch launches a browser for this call, opens url and returns the DOM once
// the ready selector is present.
func (s *RodScraper) Fetch(ctx context.Context, url string) (Page, error) {
	log := s.log.WithField("url", url)
	log.Info("Loading booking page")

	bin := s.browserBin
	if bin == "" {
		path, exists := launcher.LookPath()
		if !exists {
			log.Error("Cannot find browser executable for rod")
			return Page{}, errors.New("rod browser dependency not found")
		}
		bin = path
	}

	l := launcher.New().Bin(bin).Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		log.WithError(err).Error("Failed to launch browser")
		return Page{}, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err = browser.Connect(); err != nil {
		log.WithError(err).Error("Failed to connect to rod browser")
		return Page{}, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing rod browser instance")
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		log.WithError(err).Error("Failed to create rod page")
		return Page{}, fmt.Errorf("failed to create page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			log.WithError(closeErr).Debug("Error closing rod page")
		}
	}()

	// The load event and the ready selector share one deadline.
	pageCtx, cancel := context.WithTimeout(ctx, s.readyTimeout)
	defer cancel()
	p := page.Context(pageCtx)

	if err = p.WaitLoad(); err != nil {
		if notReady := s.readinessError(ctx, pageCtx, err); notReady != nil {
			log.WithError(err).Warn("Booking page did not finish loading")
			return Page{}, notReady
		}
		log.WithError(err).Error("Failed to wait for page load")
		return Page{}, fmt.Errorf("failed waiting for page load: %w", err)
	}

	if s.readySelector != "" {
		// Element retries until the selector matches or the deadline fires.
		if _, err = p.Element(s.readySelector); err != nil {
			if notReady := s.readinessError(ctx, pageCtx, err); notReady != nil {
				log.WithField("selector", s.readySelector).Warn("Booking page did not become ready")
				return Page{}, notReady
			}
			log.WithError(err).Error("Failed waiting for ready selector")
			return Page{}, fmt.Errorf("failed waiting for %s: %w", s.readySelector, err)
		}
	}

	html, err := p.HTML()
	if err != nil {
		log.WithError(err).Error("Failed to read page html")
		return Page{}, fmt.Errorf("failed to read page html: %w", err)
	}

	finalURL := url
	if info, infoErr := p.Info(); infoErr == nil && info.URL != "" {
		finalURL = info.URL
	} else if infoErr != nil {
		log.WithError(infoErr).Debug("Could not read page info, keeping requested url")
	}

	log.WithField("final_url", finalURL).Info("Booking page loaded")
	return Page{URL: finalURL, HTML: html}, nil
}

// readinessError maps an expired page deadline to domain.ErrDocumentNotReady.
// It returns nil when err is unrelated to the deadline or the caller itself
// was cancelled.
func (s *RodScraper) readinessError(parent, pageCtx context.Context, err error) error {
	if parent.Err() != nil {
		return nil
	}
	if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
		return nil
	}
	return fmt.Errorf("%w: %s not found after %s", domain.ErrDocumentNotReady, s.readySelector, s.readyTimeout)
}
