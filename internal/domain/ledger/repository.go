package ledger

import (
	"context"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// Repository persists stock entries. Listing order is not significant;
// the reconstruction sorts by date itself.
type Repository interface {
	// ListByProduct returns all entries for the product.
	ListByProduct(ctx context.Context, productID id.ID) ([]StockEntry, error)

	// ListByProductRange returns entries with from <= date <= to.
	ListByProductRange(ctx context.Context, productID id.ID, from, to calendar.DayKey) ([]StockEntry, error)

	// GetByID returns a single entry or a not-found error.
	GetByID(ctx context.Context, entryID id.ID) (*StockEntry, error)

	// Insert creates a new entry row. Fails with a duplicate error when
	// the (product, date) pair already has one.
	Insert(ctx context.Context, entry *StockEntry) error

	// Update rewrites an existing entry row.
	Update(ctx context.Context, entry *StockEntry) error

	// Delete removes an entry row.
	Delete(ctx context.Context, entryID id.ID) error

	// ListRecent returns the newest entries across all products, for
	// the movements feed.
	ListRecent(ctx context.Context, productID *id.ID, limit int) ([]StockEntry, error)
}

// ProductStore is the slice of the product catalog the ledger needs:
// reading and propagating the baseline stock level.
type ProductStore interface {
	BaselineStock(ctx context.Context, productID id.ID) (int, error)
	SetBaselineStock(ctx context.Context, productID id.ID, stock int) error
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
