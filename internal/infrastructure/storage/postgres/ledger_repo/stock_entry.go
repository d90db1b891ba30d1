// Package ledger_repo implements the stock entry repository over PostgreSQL.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres"
)

const entryTable = "stock_entries"

var entryColumns = []string{
	"id", "product_id", "entry_date", "quantity_in", "quantity_out",
	"current_stock", "notes", "created_at", "updated_at",
}

// StockEntryRepo implements ledger.Repository. Dates cross the storage
// boundary as YYYY-MM-DD strings mapped to a DATE column, so no
// timezone conversion can shift them.
type StockEntryRepo struct {
	txm *postgres.TxManager
}

var _ ledger.Repository = (*StockEntryRepo)(nil)

func NewStockEntryRepo(txm *postgres.TxManager) *StockEntryRepo {
	return &StockEntryRepo{txm: txm}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *StockEntryRepo) selectEntries() squirrel.SelectBuilder {
	cols := make([]string, len(entryColumns))
	copy(cols, entryColumns)
	// DATE comes back as its text form, never a timestamp.
	cols[2] = "to_char(entry_date, 'YYYY-MM-DD') AS entry_date"
	return builder().Select(cols...).From(entryTable)
}

func (r *StockEntryRepo) ListByProduct(ctx context.Context, productID id.ID) ([]ledger.StockEntry, error) {
	q := r.selectEntries().
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("entry_date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []ledger.StockEntry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

func (r *StockEntryRepo) ListByProductRange(ctx context.Context, productID id.ID, from, to calendar.DayKey) ([]ledger.StockEntry, error) {
	q := r.selectEntries().
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.GtOrEq{"entry_date": string(from)}).
		Where(squirrel.LtOrEq{"entry_date": string(to)}).
		OrderBy("entry_date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []ledger.StockEntry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list entries in range: %w", err)
	}
	return out, nil
}

func (r *StockEntryRepo) GetByID(ctx context.Context, entryID id.ID) (*ledger.StockEntry, error) {
	q := r.selectEntries().Where(squirrel.Eq{"id": entryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e ledger.StockEntry
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("stock entry", entryID)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

func (r *StockEntryRepo) Insert(ctx context.Context, entry *ledger.StockEntry) error {
	q := builder().
		Insert(entryTable).
		Columns(entryColumns...).
		Values(entry.ID, entry.ProductID, string(entry.Date), entry.QuantityIn, entry.QuantityOut,
			entry.CurrentStock, entry.Notes, entry.CreatedAt, entry.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("stock entry", "date", string(entry.Date))
		}
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewNotFound("product", entry.ProductID)
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *StockEntryRepo) Update(ctx context.Context, entry *ledger.StockEntry) error {
	q := builder().
		Update(entryTable).
		Set("quantity_in", entry.QuantityIn).
		Set("quantity_out", entry.QuantityOut).
		Set("current_stock", entry.CurrentStock).
		Set("notes", entry.Notes).
		Set("updated_at", entry.UpdatedAt).
		Where(squirrel.Eq{"id": entry.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock entry", entry.ID)
	}
	return nil
}

func (r *StockEntryRepo) Delete(ctx context.Context, entryID id.ID) error {
	q := builder().
		Delete(entryTable).
		Where(squirrel.Eq{"id": entryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock entry", entryID)
	}
	return nil
}

func (r *StockEntryRepo) ListRecent(ctx context.Context, productID *id.ID, limit int) ([]ledger.StockEntry, error) {
	q := r.selectEntries().
		OrderBy("updated_at DESC").
		Limit(uint64(limit))
	if productID != nil {
		q = q.Where(squirrel.Eq{"product_id": *productID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []ledger.StockEntry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list recent entries: %w", err)
	}
	return out, nil
}
