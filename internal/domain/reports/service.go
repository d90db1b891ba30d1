package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/calendar"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/pkg/logger"
)

// Repository runs the aggregate queries behind the reports.
type Repository interface {
	CountProducts(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	CountOutOfStock(ctx context.Context) (int, error)
	StockValue(ctx context.Context) (decimal.Decimal, error)
	DayTotals(ctx context.Context, day calendar.DayKey) (StockTotals, error)
	RangeTotals(ctx context.Context, from, to calendar.DayKey) (StockTotals, error)
	Movements(ctx context.Context, from, to calendar.DayKey, productID *id.ID) ([]MovementRow, error)
	Valuation(ctx context.Context) ([]ValuationRow, error)
}

// Service implements the report use cases. marginPercent is the sale
// margin applied over cost for revenue projection.
type Service struct {
	repo          Repository
	marginPercent decimal.Decimal
	loc           *time.Location
	log           *logger.Logger
}

func NewService(repo Repository, marginPercent decimal.Decimal, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if marginPercent.IsZero() {
		marginPercent = decimal.NewFromInt(20)
	}
	return &Service{
		repo:          repo,
		marginPercent: marginPercent,
		loc:           loc,
		log:           log.WithComponent("reports.service"),
	}
}

// Dashboard assembles the landing-page summary.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.repo.CountCategories(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.repo.CountLowStock(ctx); err != nil {
		return nil, err
	}
	if stats.OutOfStockCount, err = s.repo.CountOutOfStock(ctx); err != nil {
		return nil, err
	}
	if stats.StockValue, err = s.repo.StockValue(ctx); err != nil {
		return nil, err
	}
	today, err := s.repo.DayTotals(ctx, calendar.Today(s.loc))
	if err != nil {
		return nil, err
	}
	stats.TodayIn = today.TotalIn
	stats.TodayOut = today.TotalOut
	return stats, nil
}

// Financial prices the stock and projects revenue at the margin.
// Both range bounds are optional; when given, the summary also carries
// the movement totals between them.
func (s *Service) Financial(ctx context.Context, rawFrom, rawTo string) (*FinancialSummary, error) {
	value, err := s.repo.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromInt(1).Add(s.marginPercent.Div(decimal.NewFromInt(100)))
	revenue := value.Mul(factor).Round(2)
	summary := &FinancialSummary{
		StockValue:       value,
		PotentialRevenue: revenue,
		PotentialProfit:  revenue.Sub(value),
		MarginPercent:    s.marginPercent,
		ProductCount:     count,
	}

	if rawFrom == "" && rawTo == "" {
		return summary, nil
	}
	if rawFrom == "" || rawTo == "" {
		return nil, apperror.NewValidation("both from and to are required for a ranged summary")
	}
	from, err := calendar.Normalize(rawFrom, s.loc)
	if err != nil {
		return nil, err
	}
	to, err := calendar.Normalize(rawTo, s.loc)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, apperror.NewValidation("report start date must not follow the end date")
	}
	totals, err := s.repo.RangeTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.From = &from
	summary.To = &to
	summary.Movement = &totals
	return summary, nil
}

// Movements builds the date-ranged movement report. Raw date inputs
// are normalized to calendar days; from must not follow to.
func (s *Service) Movements(ctx context.Context, rawFrom, rawTo any, productID *id.ID) (*MovementReport, error) {
	from, err := calendar.Normalize(rawFrom, s.loc)
	if err != nil {
		return nil, err
	}
	to, err := calendar.Normalize(rawTo, s.loc)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, apperror.NewValidation("report start date must not follow the end date")
	}

	rows, err := s.repo.Movements(ctx, from, to, productID)
	if err != nil {
		return nil, err
	}
	totals, err := s.repo.RangeTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &MovementReport{From: from, To: to, Totals: totals, Rows: rows}, nil
}

// Valuation lists every product's priced baseline stock.
func (s *Service) Valuation(ctx context.Context) ([]ValuationRow, error) {
	return s.repo.Valuation(ctx)
}
