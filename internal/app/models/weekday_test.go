package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeekday(t *testing.T) {
	tests := []struct {
		raw  int
		want Weekday
	}{
		{0, Sunday},
		{1, Monday},
		{3, Wednesday},
		{6, Saturday},
		// ISO-style encoding: 7 is Sunday again
		{7, Sunday},
	}

	for _, tt := range tests {
		got, err := NormalizeWeekday(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw=%d", tt.raw)
	}
}

func TestNormalizeWeekday_OutOfRange(t *testing.T) {
	for _, raw := range []int{-1, 8, 100} {
		_, err := NormalizeWeekday(raw)
		assert.Error(t, err, "raw=%d", raw)
	}
}

func TestWeekdayMatches(t *testing.T) {
	// June 3rd 2024 is a Monday
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.True(t, Monday.Matches(monday))
	assert.False(t, Tuesday.Matches(monday))
	assert.True(t, Sunday.Matches(monday.AddDate(0, 0, 6)))
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Saturday", Saturday.String())
	assert.Equal(t, "Weekday(9)", Weekday(9).String())
}
