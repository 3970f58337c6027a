package scraper

import "context"

// Page is a rendered booking page.
type Page struct {
	// URL is the address the browser ended up on, after redirects.
	URL string
	// HTML is the serialized DOM once the ready selector appeared.
	HTML string
}

// Scraper loads a booking page and waits until it is ready for extraction.
type Scraper interface {
	// Fetch returns the rendered page, or domain.ErrDocumentNotReady when the
	// ready selector does not appear within the configured timeout.
	Fetch(ctx context.Context, url string) (Page, error)
}
