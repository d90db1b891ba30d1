// Package reports computes dashboard, financial and movement reports.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	StockValue      decimal.Decimal `json:"stockValue"`
	TodayIn         int             `json:"todayIn"`
	TodayOut        int             `json:"todayOut"`
}

// FinancialSummary prices the current stock and projects revenue at
// the configured sale margin. When a date range is requested the
// movement totals for that period are included.
type FinancialSummary struct {
	StockValue       decimal.Decimal  `json:"stockValue"`
	PotentialRevenue decimal.Decimal  `json:"potentialRevenue"`
	PotentialProfit  decimal.Decimal  `json:"potentialProfit"`
	MarginPercent    decimal.Decimal  `json:"marginPercent"`
	ProductCount     int              `json:"productCount"`
	From             *calendar.DayKey `json:"from,omitempty"`
	To               *calendar.DayKey `json:"to,omitempty"`
	Movement         *StockTotals     `json:"movement,omitempty"`
}

// MovementRow is one line of the movement report.
type MovementRow struct {
	EntryID      id.ID           `json:"entryId" db:"entry_id"`
	ProductID    id.ID           `json:"productId" db:"product_id"`
	ProductName  string          `json:"productName" db:"product_name"`
	CategoryName string          `json:"categoryName" db:"category_name"`
	Date         calendar.DayKey `json:"date" db:"entry_date"`
	QuantityIn   int             `json:"quantityIn" db:"quantity_in"`
	QuantityOut  int             `json:"quantityOut" db:"quantity_out"`
	RunningStock int             `json:"runningStock" db:"current_stock"`
	Notes        string          `json:"notes" db:"notes"`
}

// StockTotals aggregates movement over a period.
type StockTotals struct {
	TotalIn  int `json:"totalIn" db:"total_in"`
	TotalOut int `json:"totalOut" db:"total_out"`
	Entries  int `json:"entries" db:"entries"`
}

// MovementReport is the full date-ranged report.
type MovementReport struct {
	From   calendar.DayKey `json:"from"`
	To     calendar.DayKey `json:"to"`
	Totals StockTotals     `json:"totals"`
	Rows   []MovementRow   `json:"rows"`
}

// ValuationRow prices one product's baseline stock.
type ValuationRow struct {
	ProductID   id.ID           `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	ActualStock int             `json:"actualStock" db:"actual_stock"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	StockValue  decimal.Decimal `json:"stockValue" db:"stock_value"`
}
