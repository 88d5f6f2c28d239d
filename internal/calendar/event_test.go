package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:05", "09:05", false},
		{"9:05", "09:05", false},
		{" 23:59 ", "23:59", false},
		{"24:00", "", true},
		{"noon", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := NormalizeClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Personal")
	require.NoError(t, err)
	assert.Equal(t, CategoryPersonal, c)

	_, err = ParseCategory("holiday")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, june15, d)
	assert.Equal(t, "2025-06-15", d.String())

	_, err = ParseDateKey("2025-02-30")
	assert.Error(t, err)
	_, err = ParseDateKey("15/06/2025")
	assert.Error(t, err)

	assert.True(t, DateKey{2024, 2, 29}.Valid())
	assert.False(t, DateKey{2025, 2, 29}.Valid())
	assert.False(t, DateKey{2025, 0, 1}.Valid())
}

func TestEvent_JSONCanonicalNames(t *testing.T) {
	e := Event{ID: "x", Title: "T", Description: "D", StartTime: "09:00", EndTime: "10:00", Category: CategoryWork}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","title":"T","description":"D","startTime":"09:00","endTime":"10:00","category":"work"}`, string(data))

	var back Event
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e, back)
}

func TestEvent_JSONPrefersCanonicalOverLegacy(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"startTime":"08:00","start":"07:00","end":"09:00"}`), &e))
	assert.Equal(t, "08:00", e.StartTime)
	assert.Equal(t, "09:00", e.EndTime)
}
