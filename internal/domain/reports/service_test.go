package reports

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

type fakeRepo struct {
	products   int
	categories int
	lowStock   int
	outOfStock int
	stockValue decimal.Decimal
	dayTotals  StockTotals
	rows       []MovementRow
	totals     StockTotals
}

func (r *fakeRepo) CountProducts(context.Context) (int, error)   { return r.products, nil }
func (r *fakeRepo) CountCategories(context.Context) (int, error) { return r.categories, nil }
func (r *fakeRepo) CountLowStock(context.Context) (int, error)   { return r.lowStock, nil }
func (r *fakeRepo) CountOutOfStock(context.Context) (int, error) { return r.outOfStock, nil }
func (r *fakeRepo) StockValue(context.Context) (decimal.Decimal, error) {
	return r.stockValue, nil
}
func (r *fakeRepo) DayTotals(context.Context, calendar.DayKey) (StockTotals, error) {
	return r.dayTotals, nil
}
func (r *fakeRepo) RangeTotals(context.Context, calendar.DayKey, calendar.DayKey) (StockTotals, error) {
	return r.totals, nil
}
func (r *fakeRepo) Movements(context.Context, calendar.DayKey, calendar.DayKey, *id.ID) ([]MovementRow, error) {
	return r.rows, nil
}
func (r *fakeRepo) Valuation(context.Context) ([]ValuationRow, error) { return nil, nil }

func newTestService(t *testing.T, repo *fakeRepo, margin string) *Service {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)
	return NewService(repo, decimal.RequireFromString(margin), time.UTC, log)
}

func TestDashboard(t *testing.T) {
	repo := &fakeRepo{
		products:   12,
		categories: 3,
		lowStock:   2,
		outOfStock: 1,
		stockValue: decimal.RequireFromString("850.40"),
		dayTotals:  StockTotals{TotalIn: 30, TotalOut: 12},
	}
	svc := newTestService(t, repo, "20")

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalCategories)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.True(t, stats.StockValue.Equal(decimal.RequireFromString("850.40")))
	assert.Equal(t, 30, stats.TodayIn)
	assert.Equal(t, 12, stats.TodayOut)
}

func TestFinancialAppliesMargin(t *testing.T) {
	repo := &fakeRepo{products: 4, stockValue: decimal.NewFromInt(100)}
	svc := newTestService(t, repo, "20")

	sum, err := svc.Financial(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, sum.PotentialRevenue.Equal(decimal.NewFromInt(120)), sum.PotentialRevenue.String())
	assert.True(t, sum.PotentialProfit.Equal(decimal.NewFromInt(20)), sum.PotentialProfit.String())
	assert.Equal(t, 4, sum.ProductCount)
	assert.Nil(t, sum.Movement)
}

func TestFinancialWithRange(t *testing.T) {
	repo := &fakeRepo{
		products:   4,
		stockValue: decimal.NewFromInt(100),
		totals:     StockTotals{TotalIn: 40, TotalOut: 15, Entries: 9},
	}
	svc := newTestService(t, repo, "20")

	sum, err := svc.Financial(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.NotNil(t, sum.Movement)
	assert.Equal(t, 40, sum.Movement.TotalIn)
	assert.Equal(t, calendar.DayKey("2024-06-01"), *sum.From)
	assert.Equal(t, calendar.DayKey("2024-06-30"), *sum.To)

	_, err = svc.Financial(context.Background(), "2024-06-01", "")
	assert.Error(t, err)

	_, err = svc.Financial(context.Background(), "2024-06-30", "2024-06-01")
	assert.Error(t, err)
}

func TestMovementsValidatesRange(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, "20")

	_, err := svc.Movements(context.Background(), "2024-06-10", "2024-06-01", nil)
	assert.Error(t, err)

	_, err = svc.Movements(context.Background(), "not a date", "2024-06-01", nil)
	assert.Error(t, err)
}

func TestMovementsNormalizesTimestamps(t *testing.T) {
	repo := &fakeRepo{totals: StockTotals{TotalIn: 5, TotalOut: 2, Entries: 3}}
	svc := newTestService(t, repo, "20")

	report, err := svc.Movements(context.Background(), "2024-06-01T10:30:00Z", "2024-06-30", nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.DayKey("2024-06-01"), report.From)
	assert.Equal(t, calendar.DayKey("2024-06-30"), report.To)
	assert.Equal(t, 5, report.Totals.TotalIn)
}

func TestWriteMovementCSV(t *testing.T) {
	report := &MovementReport{
		Rows: []MovementRow{
			{Date: "2024-06-03", ProductName: "Milk", CategoryName: "Dairy", QuantityIn: 10, RunningStock: 10},
			{Date: "2024-06-04", ProductName: "Milk", CategoryName: "Dairy", QuantityOut: 4, RunningStock: 6, Notes: "spoilage, two crates"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMovementCSV(&buf, report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,product,category,quantity_in,quantity_out,running_stock,notes", lines[0])
	assert.Contains(t, lines[1], "2024-06-03,Milk,Dairy,10,0,10,")
	assert.Contains(t, lines[2], `"spoilage, two crates"`)
}
