package booking

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingcal/internal/domain"
)

func seoul(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	return loc
}

func TestParseBookedDate(t *testing.T) {
	loc := seoul(t)

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"afternoon", "2024. 3. 5(화) 오후 2:30", time.Date(2024, 3, 5, 14, 30, 0, 0, loc)},
		{"double digit month and day", "2024. 12. 25(수) 오전 10:05", time.Date(2024, 12, 25, 10, 5, 0, 0, loc)},
		{"afternoon one", "2024. 1. 9(화) 오후 1:00", time.Date(2024, 1, 9, 13, 0, 0, 0, loc)},
		{"afternoon noon", "2024. 1. 9(화) 오후 12:15", time.Date(2024, 1, 9, 12, 15, 0, 0, loc)},
		{"morning midnight", "2024. 1. 9(화) 오전 12:40", time.Date(2024, 1, 9, 0, 40, 0, 0, loc)},
		{"morning one", "2024. 1. 9(화) 오전 1:00", time.Date(2024, 1, 9, 1, 0, 0, 0, loc)},
		{"double digit hour", "2024. 7. 1(월) 오후 11:59", time.Date(2024, 7, 1, 23, 59, 0, 0, loc)},
		{"collapsed whitespace", "  2024.  3. 5(화)\n\t오후   2:30 ", time.Date(2024, 3, 5, 14, 30, 0, 0, loc)},
		{"empty parenthesis", "2024. 3. 5() 오후 2:30", time.Date(2024, 3, 5, 14, 30, 0, 0, loc)},
		{"non breaking space", "2024.\u00a03.\u00a05(화)\u00a0오후\u00a02:30", time.Date(2024, 3, 5, 14, 30, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookedDate(tt.text, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, loc, got.Location())
			assert.Equal(t, 0, got.Second())
		})
	}
}

func TestParseBookedDate_Rejects(t *testing.T) {
	loc := seoul(t)

	tests := []struct {
		name string
		text string
	}{
		{"missing marker", "2024. 3. 5(화) 2:30"},
		{"english marker", "2024. 3. 5(화) PM 2:30"},
		{"dash separators", "2024-3-5(화) 오후 2:30"},
		{"no space after dot", "2024.3.5(화) 오후 2:30"},
		{"missing weekday", "2024. 3. 5 오후 2:30"},
		{"single digit minute", "2024. 3. 5(화) 오후 2:3"},
		{"two digit year", "24. 3. 5(화) 오후 2:30"},
		{"trailing text", "2024. 3. 5(화) 오후 2:30 예약"},
		{"month out of range", "2024. 13. 5(화) 오후 2:30"},
		{"minute out of range", "2024. 3. 5(화) 오후 2:60"},
		{"day does not exist", "2023. 2. 29(수) 오전 9:00"},
		{"day zero", "2024. 3. 0(화) 오전 9:00"},
		{"free text", "예약 일시 미정"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookedDate(tt.text, loc)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnparseableDateTime)
			assert.True(t, got.IsZero())
		})
	}
}

func TestParseBookedDate_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := ParseBookedDate(text, seoul(t))
		assert.ErrorIs(t, err, domain.ErrNoDateTime)
		assert.NotErrorIs(t, err, domain.ErrUnparseableDateTime)
	}
}

func TestParseBookedDate_UnnamedLocationUsesDefaultZone(t *testing.T) {
	for _, loc := range []*time.Location{nil, time.Local} {
		got, err := ParseBookedDate("2024. 3. 5(화) 오후 2:30", loc)
		require.NoError(t, err)
		assert.Equal(t, DefaultZoneID, got.Location().String())
		assert.Equal(t, 14, got.Hour())
	}
}
