package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year string
		want             time.Time
		wantErr          bool
	}{
		{name: "abbreviation", day: "5", month: "Jan", year: "24", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{name: "lower case", day: "17", month: "sep", year: "23", want: time.Date(2023, 9, 17, 0, 0, 0, 0, time.UTC)},
		{name: "full name", day: "1", month: "March", year: "25", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "trailing dot", day: "9", month: "Dec.", year: "22", want: time.Date(2022, 12, 9, 0, 0, 0, 0, time.UTC)},
		{name: "four digit year", day: "2", month: "Feb", year: "2031", want: time.Date(2031, 2, 2, 0, 0, 0, 0, time.UTC)},
		{name: "unknown month", day: "5", month: "Xyz", year: "24", wantErr: true},
		{name: "impossible day", day: "30", month: "Feb", year: "24", wantErr: true},
		{name: "day zero", day: "0", month: "Jan", year: "24", wantErr: true},
		{name: "non numeric day", day: "x", month: "Jan", year: "24", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.day, tt.month, tt.year)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComposeInstant(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("two digit hour", func(t *testing.T) {
		got, err := ComposeInstant(date, "08:15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 5, 8, 15, 0, 0, time.UTC), got)
	})

	t.Run("single digit hour", func(t *testing.T) {
		got, err := ComposeInstant(date, "7:05")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 5, 7, 5, 0, 0, time.UTC), got)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := ComposeInstant(date, "25:99")
		assert.Error(t, err)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := ComposeInstant(time.Time{}, "08:15")
		assert.Error(t, err)
	})
}
