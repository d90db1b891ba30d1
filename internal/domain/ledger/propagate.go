package ledger

// ShouldPropagate reports whether the new running stock of the mutated
// day should be written back to the product's stock baseline. It should
// not when a later day inside the window already has a persisted row:
// that row's snapshot, not the edited day, is the product's latest
// known balance.
func ShouldPropagate(led *WeekLedger, op PersistOp) bool {
	idx := led.Window.IndexOf(op.Date)
	if idx < 0 {
		return false
	}
	for i := idx + 1; i < len(led.Days); i++ {
		if led.Days[i].HasEntry() {
			return false
		}
	}
	return true
}
