package ledger

import (
	"fmt"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// Field identifies an editable cell of a day line.
type Field string

const (
	FieldQuantityIn  Field = "quantity_in"
	FieldQuantityOut Field = "quantity_out"
	FieldNotes       Field = "notes"
)

// Direction of a quick adjustment.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// OpKind says whether a mutation creates a new row or rewrites one.
type OpKind string

const (
	OpInsert OpKind = "insert"
	OpUpdate OpKind = "update"
)

// PersistOp is the storage-ready result of a ledger mutation. EntryID is
// set only for updates.
type PersistOp struct {
	Kind         OpKind
	EntryID      id.ID
	ProductID    id.ID
	Date         calendar.DayKey
	QuantityIn   int
	QuantityOut  int
	RunningStock int
	Notes        string
}

// ApplyEdit sets one field of the given day and recomputes that day's
// running stock from the preceding balance. Negative quantities are
// clamped to zero before applying; notes edits keep both quantities.
func ApplyEdit(led *WeekLedger, day calendar.DayKey, field Field, quantity int, notes string) (PersistOp, error) {
	idx := led.Window.IndexOf(day)
	if idx < 0 {
		return PersistOp{}, apperror.NewValidation(fmt.Sprintf("day %s is outside the requested week", day))
	}
	if quantity < 0 {
		quantity = 0
	}

	line := led.Days[idx]
	in, out := line.QuantityIn, line.QuantityOut
	switch field {
	case FieldQuantityIn:
		in = quantity
	case FieldQuantityOut:
		out = quantity
	case FieldNotes:
		line.Notes = notes
	default:
		return PersistOp{}, apperror.NewValidation(fmt.Sprintf("unknown ledger field %q", field))
	}
	return buildOp(led, idx, in, out, line.Notes), nil
}

// ApplyQuickAction adds the given amount to the day's inbound or
// outbound quantity. Amount must be positive.
func ApplyQuickAction(led *WeekLedger, day calendar.DayKey, dir Direction, amount int) (PersistOp, error) {
	idx := led.Window.IndexOf(day)
	if idx < 0 {
		return PersistOp{}, apperror.NewValidation(fmt.Sprintf("day %s is outside the requested week", day))
	}
	if amount <= 0 {
		return PersistOp{}, apperror.NewValidation("adjustment amount must be positive")
	}

	line := led.Days[idx]
	in, out := line.QuantityIn, line.QuantityOut
	switch dir {
	case DirectionIn:
		in += amount
	case DirectionOut:
		out += amount
	default:
		return PersistOp{}, apperror.NewValidation(fmt.Sprintf("unknown adjustment direction %q", dir))
	}
	return buildOp(led, idx, in, out, line.Notes), nil
}

// ApplyMovement replaces both quantities of the day at once, as a
// movement form submission does.
func ApplyMovement(led *WeekLedger, day calendar.DayKey, in, out int, notes string) (PersistOp, error) {
	idx := led.Window.IndexOf(day)
	if idx < 0 {
		return PersistOp{}, apperror.NewValidation(fmt.Sprintf("day %s is outside the requested week", day))
	}
	if in < 0 {
		in = 0
	}
	if out < 0 {
		out = 0
	}
	return buildOp(led, idx, in, out, notes), nil
}

// buildOp recomputes the day's running stock and decides insert versus
// update from whether a persisted row already backs the day.
func buildOp(led *WeekLedger, idx int, in, out int, notes string) PersistOp {
	previous := led.StartingStock
	if idx > 0 {
		previous = led.Days[idx-1].RunningStock
	}
	running := previous + in - out
	if running < 0 {
		running = 0
	}

	op := PersistOp{
		Kind:         OpInsert,
		ProductID:    led.ProductID,
		Date:         led.Days[idx].Date,
		QuantityIn:   in,
		QuantityOut:  out,
		RunningStock: running,
		Notes:        notes,
	}
	if line := led.Days[idx]; line.HasEntry() {
		op.Kind = OpUpdate
		op.EntryID = *line.EntryID
	}
	return op
}
