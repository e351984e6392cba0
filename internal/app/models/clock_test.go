package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want Clock
	}{
		{"00:00", 0},
		{"09:05", 9*60 + 5},
		{"23:59", 23*60 + 59},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"24:00", "12:60", "-1:00", "noon", ""} {
		_, err := ParseClock(in)
		assert.Error(t, err, in)
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "09:05", Clock(9*60+5).String())
	assert.Equal(t, "00:00", Clock(0).String())
}

func TestClockJSONRoundTrip(t *testing.T) {
	type payload struct {
		Start Clock `json:"start"`
	}

	data, err := json.Marshal(payload{Start: MustParseClock("18:30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"18:30"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"07:45"}`), &decoded))
	assert.Equal(t, Clock(7*60+45), decoded.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"25:00"}`), &decoded))
}

func TestSubmissionKey(t *testing.T) {
	date := mustDate(t, "2024-06-03")
	assert.Equal(t, "42|2024-06-03", SubmissionKey(42, date))
}
