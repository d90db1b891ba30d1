// Package report_repo runs the aggregate report queries over PostgreSQL.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/reports"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm *postgres.TxManager
}

var _ reports.Repository = (*ReportRepo)(nil)

func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ReportRepo) count(ctx context.Context, q squirrel.SelectBuilder) (int, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &n, sql, args...); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (r *ReportRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, builder().Select("count(*)").From("products"))
}

func (r *ReportRepo) CountCategories(ctx context.Context) (int, error) {
	return r.count(ctx, builder().Select("count(*)").From("categories"))
}

func (r *ReportRepo) CountLowStock(ctx context.Context) (int, error) {
	return r.count(ctx, builder().
		Select("count(*)").
		From("products").
		Where("actual_stock <= min_stock"))
}

func (r *ReportRepo) CountOutOfStock(ctx context.Context) (int, error) {
	return r.count(ctx, builder().
		Select("count(*)").
		From("products").
		Where("actual_stock <= 0"))
}

func (r *ReportRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	q := builder().
		Select("coalesce(sum(unit_price * actual_stock), 0)").
		From("products")

	sql, args, err := q.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build query: %w", err)
	}
	var value decimal.Decimal
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &value, sql, args...); err != nil {
		return decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	return value, nil
}

func (r *ReportRepo) DayTotals(ctx context.Context, day calendar.DayKey) (reports.StockTotals, error) {
	return r.totals(ctx, builder().
		Select(
			"coalesce(sum(quantity_in), 0) AS total_in",
			"coalesce(sum(quantity_out), 0) AS total_out",
			"count(*) AS entries",
		).
		From("stock_entries").
		Where(squirrel.Eq{"entry_date": string(day)}))
}

func (r *ReportRepo) RangeTotals(ctx context.Context, from, to calendar.DayKey) (reports.StockTotals, error) {
	return r.totals(ctx, builder().
		Select(
			"coalesce(sum(quantity_in), 0) AS total_in",
			"coalesce(sum(quantity_out), 0) AS total_out",
			"count(*) AS entries",
		).
		From("stock_entries").
		Where(squirrel.GtOrEq{"entry_date": string(from)}).
		Where(squirrel.LtOrEq{"entry_date": string(to)}))
}

func (r *ReportRepo) totals(ctx context.Context, q squirrel.SelectBuilder) (reports.StockTotals, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return reports.StockTotals{}, fmt.Errorf("build query: %w", err)
	}
	var totals reports.StockTotals
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &totals, sql, args...); err != nil {
		return reports.StockTotals{}, fmt.Errorf("movement totals: %w", err)
	}
	return totals, nil
}

func (r *ReportRepo) Movements(ctx context.Context, from, to calendar.DayKey, productID *id.ID) ([]reports.MovementRow, error) {
	q := builder().
		Select(
			"e.id AS entry_id",
			"e.product_id",
			"p.name AS product_name",
			"coalesce(c.name, '') AS category_name",
			"to_char(e.entry_date, 'YYYY-MM-DD') AS entry_date",
			"e.quantity_in",
			"e.quantity_out",
			"e.current_stock",
			"e.notes",
		).
		From("stock_entries e").
		Join("products p ON p.id = e.product_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(squirrel.GtOrEq{"e.entry_date": string(from)}).
		Where(squirrel.LtOrEq{"e.entry_date": string(to)}).
		OrderBy("e.entry_date", "p.name")

	if productID != nil {
		q = q.Where(squirrel.Eq{"e.product_id": *productID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []reports.MovementRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("movement report: %w", err)
	}
	return out, nil
}

func (r *ReportRepo) Valuation(ctx context.Context) ([]reports.ValuationRow, error) {
	q := builder().
		Select(
			"id AS product_id",
			"name AS product_name",
			"actual_stock",
			"unit_price",
			"unit_price * actual_stock AS stock_value",
		).
		From("products").
		OrderBy("stock_value DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []reports.ValuationRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("valuation report: %w", err)
	}
	return out, nil
}
