package dto

// MovementReportQuery selects the reporting period.
type MovementReportQuery struct {
	From      string `form:"from" binding:"required"`
	To        string `form:"to" binding:"required"`
	ProductID string `form:"productId"`
	Format    string `form:"format" binding:"omitempty,oneof=json csv"`
}

// FinancialQuery optionally bounds the movement totals of the summary.
type FinancialQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}
