package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

func entry(productID id.ID, day calendar.DayKey, in, out, stock int) StockEntry {
	return StockEntry{
		ID:           id.New(),
		ProductID:    productID,
		Date:         day,
		QuantityIn:   in,
		QuantityOut:  out,
		CurrentStock: stock,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// A product with no entries shows its baseline on every day of any week.
func TestReconstructEmptyProduct(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-03")

	led := Reconstruct(productID, window, nil, 25)

	assert.Equal(t, 25, led.StartingStock)
	for _, line := range led.Days {
		assert.False(t, line.HasEntry())
		assert.Equal(t, 0, line.QuantityIn)
		assert.Equal(t, 0, line.QuantityOut)
		assert.Equal(t, 25, line.RunningStock)
	}
}

// Baseline zero, no entries: all seven lines flat at zero.
func TestReconstructZeroBaseline(t *testing.T) {
	led := Reconstruct(id.New(), calendar.WeekOfKey("2024-06-03"), nil, 0)

	for _, line := range led.Days {
		assert.Equal(t, 0, line.QuantityIn)
		assert.Equal(t, 0, line.QuantityOut)
		assert.Equal(t, 0, line.RunningStock)
	}
}

// First entry ever lands mid-week: days before it show the baseline,
// days after carry its snapshot forward.
func TestReconstructFirstEntryMidWeek(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-03")
	entries := []StockEntry{
		entry(productID, "2024-06-05", 10, 0, 10),
	}

	led := Reconstruct(productID, window, entries, 0)

	assert.Equal(t, 0, led.StartingStock)
	assert.Equal(t, 0, led.Days[0].RunningStock) // Mon
	assert.Equal(t, 0, led.Days[1].RunningStock) // Tue
	wed := led.Days[2]
	require.True(t, wed.HasEntry())
	assert.Equal(t, 10, wed.QuantityIn)
	assert.Equal(t, 10, wed.RunningStock)
	for i := 3; i < calendar.DaysPerWeek; i++ {
		line := led.Days[i]
		assert.False(t, line.HasEntry())
		assert.Equal(t, 0, line.QuantityIn)
		assert.Equal(t, 0, line.QuantityOut)
		assert.Equal(t, 10, line.RunningStock)
	}
}

// The window seeds from the last entry before it, not the baseline,
// when prior entries exist.
func TestReconstructCarriesPriorEntry(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-10")
	entries := []StockEntry{
		entry(productID, "2024-05-20", 100, 0, 100),
		entry(productID, "2024-06-05", 0, 30, 70),
	}

	led := Reconstruct(productID, window, entries, 999)

	assert.Equal(t, 70, led.StartingStock)
	for _, line := range led.Days {
		assert.Equal(t, 70, line.RunningStock)
	}
}

// Stored snapshots are taken verbatim even when they disagree with a
// recomputation, preserving manual corrections.
func TestReconstructTrustsSnapshots(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-03")
	entries := []StockEntry{
		entry(productID, "2024-06-03", 5, 0, 5),
		// Snapshot says 40 although 5 + 2 - 0 = 7.
		entry(productID, "2024-06-04", 2, 0, 40),
	}

	led := Reconstruct(productID, window, entries, 0)

	assert.Equal(t, 40, led.Days[1].RunningStock)
	assert.Equal(t, 40, led.Days[2].RunningStock)
	assert.Equal(t, 40, led.Days[6].RunningStock)
}

// Gap days show zero movement and the nearest prior balance.
func TestReconstructGapCarryForward(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-03")
	entries := []StockEntry{
		entry(productID, "2024-06-04", 8, 0, 8),
		entry(productID, "2024-06-07", 0, 3, 5),
	}

	led := Reconstruct(productID, window, entries, 0)

	assert.Equal(t, 0, led.Days[0].RunningStock)
	assert.Equal(t, 8, led.Days[1].RunningStock)
	// Wed and Thu are gaps after Tuesday's entry.
	for _, i := range []int{2, 3} {
		assert.False(t, led.Days[i].HasEntry())
		assert.Equal(t, 0, led.Days[i].NetBalance)
		assert.Equal(t, 8, led.Days[i].RunningStock)
	}
	assert.Equal(t, 5, led.Days[4].RunningStock)
	assert.Equal(t, 5, led.Days[5].RunningStock)
	assert.Equal(t, 5, led.Days[6].RunningStock)
}

func TestCarriedStock(t *testing.T) {
	productID := id.New()
	entries := []StockEntry{
		entry(productID, "2024-06-01", 10, 0, 10),
		entry(productID, "2024-06-05", 0, 4, 6),
	}

	tests := []struct {
		name   string
		before calendar.DayKey
		want   int
	}{
		// 10 in, snapshot 10: the balance before the first entry is 0,
		// whatever the baseline says.
		{"before all entries derives from the earliest", "2024-05-01", 0},
		{"between entries uses the earlier one", "2024-06-03", 10},
		{"after all entries uses the latest", "2024-07-01", 6},
		{"same-day entry is excluded", "2024-06-05", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CarriedStock(entries, tt.before, 42))
		})
	}

	t.Run("no entries at all uses baseline", func(t *testing.T) {
		assert.Equal(t, 42, CarriedStock(nil, "2024-06-01", 42))
	})
}

// After propagation the baseline repeats the latest snapshot. Seeding
// the window from it would add the entry's movement twice, so the
// pre-window carry must come from the entries themselves.
func TestReconstructIgnoresPropagatedBaseline(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-03")
	entries := []StockEntry{
		entry(productID, "2024-06-05", 10, 0, 10),
	}

	// Baseline 10 is the propagated copy of Wednesday's snapshot.
	led := Reconstruct(productID, window, entries, 10)

	assert.Equal(t, 0, led.StartingStock)
	assert.Equal(t, 0, led.Days[0].RunningStock) // Mon
	assert.Equal(t, 0, led.Days[1].RunningStock) // Tue
	assert.Equal(t, 10, led.Days[2].RunningStock)
	assert.Equal(t, 10, led.Days[6].RunningStock)
}

// Entry order from the repository must not matter.
func TestReconstructUnsortedEntries(t *testing.T) {
	productID := id.New()
	window := calendar.WeekOfKey("2024-06-03")
	shuffled := []StockEntry{
		entry(productID, "2024-06-07", 0, 3, 5),
		entry(productID, "2024-05-20", 12, 0, 12),
		entry(productID, "2024-06-04", 0, 4, 8),
	}

	led := Reconstruct(productID, window, shuffled, 999)

	assert.Equal(t, 12, led.StartingStock)
	assert.Equal(t, 12, led.Days[0].RunningStock)
	assert.Equal(t, 8, led.Days[1].RunningStock)
	assert.Equal(t, 8, led.Days[3].RunningStock)
	assert.Equal(t, 5, led.Days[4].RunningStock)
	assert.Equal(t, 5, led.Days[6].RunningStock)

	assert.Equal(t, 12, CarriedStock(shuffled, "2024-06-01", 999))
}
