package ledger

import (
	"sort"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// CarriedStock returns the balance entering the given day: the stored
// running stock of the latest entry dated strictly before it. Without
// such an entry the balance is derived from the earliest entry by
// removing that entry's own movement; once propagation has copied a
// snapshot into the product baseline, reading the baseline here would
// count the same movement twice. The baseline stands in only for a
// product with no entries at all. Entries may arrive in any order.
func CarriedStock(entries []StockEntry, before calendar.DayKey, baseline int) int {
	if len(entries) == 0 {
		return baseline
	}
	sorted := sortedByDate(entries)
	carried := stockBefore(&sorted[0])
	for i := range sorted {
		if !sorted[i].Date.Before(before) {
			break
		}
		carried = sorted[i].CurrentStock
	}
	return carried
}

// stockBefore reverses an entry's own movement out of its snapshot.
func stockBefore(e *StockEntry) int {
	prior := e.CurrentStock - e.QuantityIn + e.QuantityOut
	if prior < 0 {
		prior = 0
	}
	return prior
}

func sortedByDate(entries []StockEntry) []StockEntry {
	out := make([]StockEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Reconstruct builds the seven-day view for one product from its sparse
// entries. Days backed by a persisted row take that row's stored running
// stock verbatim; days without a row carry the previous balance forward
// unchanged. Entries outside the window are only used to seed the
// carried balance, and need not be sorted.
func Reconstruct(productID id.ID, window calendar.Week, entries []StockEntry, baseline int) *WeekLedger {
	sorted := sortedByDate(entries)
	led := &WeekLedger{
		ProductID:     productID,
		Window:        window,
		StartingStock: CarriedStock(sorted, window.Start(), baseline),
	}

	byDay := make(map[calendar.DayKey]*StockEntry, len(sorted))
	for i := range sorted {
		if window.Contains(sorted[i].Date) {
			byDay[sorted[i].Date] = &sorted[i]
		}
	}

	running := led.StartingStock
	for i, day := range window {
		line := DayLine{Date: day}
		if e, ok := byDay[day]; ok {
			eid := e.ID
			line.EntryID = &eid
			line.QuantityIn = e.QuantityIn
			line.QuantityOut = e.QuantityOut
			line.NetBalance = e.NetBalance()
			line.Notes = e.Notes
			running = e.CurrentStock
		}
		line.RunningStock = running
		led.Days[i] = line
	}
	return led
}
