package scraper

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"bookingcal/internal/domain"
)

func newTestScraper(timeout time.Duration) *RodScraper {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRodScraper(logger, "", ".confirm_item_top", timeout)
}

func TestNewRodScraper_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultReadyTimeout, newTestScraper(0).readyTimeout)
	assert.Equal(t, time.Second, newTestScraper(time.Second).readyTimeout)
}

func TestReadinessError(t *testing.T) {
	s := newTestScraper(10 * time.Millisecond)

	t.Run("page deadline expired", func(t *testing.T) {
		parent := context.Background()
		pageCtx, cancel := context.WithTimeout(parent, s.readyTimeout)
		defer cancel()
		<-pageCtx.Done()

		// The load wait can surface a wrapped error rather than the bare deadline.
		err := s.readinessError(parent, pageCtx, errors.New("navigation wait aborted"))
		assert.ErrorIs(t, err, domain.ErrDocumentNotReady)
		assert.ErrorContains(t, err, ".confirm_item_top")
	})

	t.Run("deadline error on live page context", func(t *testing.T) {
		parent := context.Background()
		err := s.readinessError(parent, parent, context.DeadlineExceeded)
		assert.ErrorIs(t, err, domain.ErrDocumentNotReady)
	})

	t.Run("caller cancelled", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		cancel()
		pageCtx, pageCancel := context.WithTimeout(parent, s.readyTimeout)
		defer pageCancel()

		assert.NoError(t, s.readinessError(parent, pageCtx, context.Canceled))
	})

	t.Run("unrelated failure", func(t *testing.T) {
		parent := context.Background()
		assert.NoError(t, s.readinessError(parent, parent, errors.New("target crashed")))
	})
}
