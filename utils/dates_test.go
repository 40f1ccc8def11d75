package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	lisbon, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	day, err := ParseDay("2024-06-01", lisbon)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, lisbon), day)

	_, err = ParseDay("01/06/2024", lisbon)
	assert.Error(t, err)
}

func TestDayWindowFollowsCalendar(t *testing.T) {
	lisbon, err := time.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	// Clocks move forward on 2024-03-31 in Lisbon; that day is 23h long.
	start, end := DayWindow(time.Date(2024, 3, 31, 15, 30, 0, 0, lisbon))
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, lisbon), start)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, lisbon), end)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}
