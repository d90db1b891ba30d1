package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantStart DayKey
		wantEnd   DayKey
	}{
		{
			name:      "wednesday anchors to its monday",
			anchor:    time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC),
			wantStart: "2025-03-10",
			wantEnd:   "2025-03-16",
		},
		{
			name:      "monday anchors to itself",
			anchor:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			wantStart: "2025-03-10",
			wantEnd:   "2025-03-16",
		},
		{
			name:      "sunday belongs to the preceding monday",
			anchor:    time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC),
			wantStart: "2025-03-10",
			wantEnd:   "2025-03-16",
		},
		{
			name:      "week spanning a month boundary",
			anchor:    time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC),
			wantStart: "2025-03-31",
			wantEnd:   "2025-04-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeekOf(tt.anchor)
			assert.Equal(t, tt.wantStart, w.Start())
			assert.Equal(t, tt.wantEnd, w.End())
			for i := 1; i < DaysPerWeek; i++ {
				assert.Equal(t, w[i-1].AddDays(1), w[i])
			}
		})
	}
}

func TestWeekContainsAndIndex(t *testing.T) {
	w := WeekOfKey("2025-03-12")

	assert.True(t, w.Contains("2025-03-10"))
	assert.True(t, w.Contains("2025-03-16"))
	assert.False(t, w.Contains("2025-03-09"))
	assert.False(t, w.Contains("2025-03-17"))

	assert.Equal(t, 0, w.IndexOf("2025-03-10"))
	assert.Equal(t, 6, w.IndexOf("2025-03-16"))
	assert.Equal(t, -1, w.IndexOf("2025-03-17"))
}

func TestWeekNavigation(t *testing.T) {
	w := WeekOfKey("2025-03-12")

	assert.Equal(t, DayKey("2025-03-03"), w.Prev().Start())
	assert.Equal(t, DayKey("2025-03-17"), w.Next().Start())
	assert.Equal(t, w, w.Prev().Next())
}
