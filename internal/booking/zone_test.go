package booking

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingcal/internal/domain"
)

func TestHasZoneID(t *testing.T) {
	assert.False(t, HasZoneID(nil))
	assert.False(t, HasZoneID(time.Local))
	assert.True(t, HasZoneID(time.UTC))
	assert.True(t, HasZoneID(seoul(t)))
}

func TestCalendarURL_LocalZoneSendsIANAName(t *testing.T) {
	for _, loc := range []*time.Location{nil, time.Local} {
		s := NewSynthesizer(loc, 60)
		assert.Equal(t, DefaultZoneID, s.Location.String())

		ev, err := s.Synthesize(sampleFragments())
		require.NoError(t, err)

		link, err := s.Link(ev)
		require.NoError(t, err)
		u, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, DefaultZoneID, u.Query().Get("ctz"))
		assert.Equal(t, "20240305T143000/20240305T153000", u.Query().Get("dates"))

		link, err = CalendarURL(ev, loc)
		require.NoError(t, err)
		u, err = url.Parse(link)
		require.NoError(t, err)
		assert.NotEqual(t, "Local", u.Query().Get("ctz"))
	}
}

func TestCalendarURL_EndMatchesEvent(t *testing.T) {
	loc := seoul(t)
	ev := domain.Event{Title: "x", Start: time.Date(2024, 3, 5, 14, 30, 0, 0, loc), DurationMinutes: 45}

	link, err := CalendarURL(ev, loc)
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, FormatCalendarTime(ev.Start, loc)+"/"+FormatCalendarTime(ev.End(), loc), u.Query().Get("dates"))
}
