// Package ledger implements the weekly stock ledger: reconstruction of
// running balances from sparse dated entries, cell edits, quick in/out
// adjustments and baseline propagation.
package ledger

import (
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// StockEntry is a persisted movement row. At most one entry exists per
// (product, date) pair; a day without an entry has no row at all.
type StockEntry struct {
	ID           id.ID           `json:"id" db:"id"`
	ProductID    id.ID           `json:"productId" db:"product_id"`
	Date         calendar.DayKey `json:"date" db:"entry_date"`
	QuantityIn   int             `json:"quantityIn" db:"quantity_in"`
	QuantityOut  int             `json:"quantityOut" db:"quantity_out"`
	CurrentStock int             `json:"currentStock" db:"current_stock"`
	Notes        string          `json:"notes" db:"notes"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// NetBalance is the day's movement delta.
func (e *StockEntry) NetBalance() int {
	return e.QuantityIn - e.QuantityOut
}

// Validate checks entry-level invariants before persistence.
func (e *StockEntry) Validate() error {
	if id.IsNil(e.ProductID) {
		return apperror.NewValidation("product id is required")
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.QuantityIn < 0 {
		return apperror.NewValidation("quantity in must not be negative")
	}
	if e.QuantityOut < 0 {
		return apperror.NewValidation("quantity out must not be negative")
	}
	if e.CurrentStock < 0 {
		return apperror.NewValidation("current stock must not be negative")
	}
	return nil
}

// DayLine is one row of the reconstructed weekly view. EntryID is nil
// for synthesized carry-forward days that have no persisted row.
type DayLine struct {
	Date         calendar.DayKey `json:"date"`
	QuantityIn   int             `json:"quantityIn"`
	QuantityOut  int             `json:"quantityOut"`
	NetBalance   int             `json:"netBalance"`
	RunningStock int             `json:"runningStock"`
	Notes        string          `json:"notes,omitempty"`
	EntryID      *id.ID          `json:"entryId,omitempty"`
}

// HasEntry reports whether a persisted row backs this line.
func (l *DayLine) HasEntry() bool {
	return l.EntryID != nil
}

// WeekLedger is a fully reconstructed seven-day view for one product.
// StartingStock is the balance carried into the window from the last
// entry before it, or the product baseline when no prior entry exists.
type WeekLedger struct {
	ProductID     id.ID                             `json:"productId"`
	Window        calendar.Week                     `json:"window"`
	Days          [calendar.DaysPerWeek]DayLine     `json:"days"`
	StartingStock int                               `json:"startingStock"`
}

// Line returns the line for the given day key, or nil when the key is
// outside the window.
func (w *WeekLedger) Line(day calendar.DayKey) *DayLine {
	idx := w.Window.IndexOf(day)
	if idx < 0 {
		return nil
	}
	return &w.Days[idx]
}
