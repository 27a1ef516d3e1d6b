package timezone_test

import (
	"carepoint/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestLocationOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty uses app timezone", input: "", expected: timezone.GetLocation().String()},
		{name: "unknown uses app timezone", input: "Mars/Olympus_Mons", expected: timezone.GetLocation().String()},
		{name: "valid zone", input: "Asia/Jakarta", expected: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timezone.LocationOrDefault(tt.input).String())
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	in := time.Date(2030, 1, 15, 23, 59, 10, 5, loc)
	got := timezone.StartOfDay(in)

	assert.Equal(t, time.Date(2030, 1, 15, 0, 0, 0, 0, loc), got)
	assert.Equal(t, "2030-01-15", timezone.FormatDate(got))
}

func TestToday(t *testing.T) {
	today := timezone.Today(time.UTC)

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), timezone.FormatDate(today))
}

func TestParseDate(t *testing.T) {
	day, err := timezone.ParseDate("2030-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-15", timezone.FormatDate(day))

	_, err = timezone.ParseDate("15/01/2030")
	assert.Error(t, err)
}
