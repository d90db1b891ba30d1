package dto

// LedgerEditRequest sets one field of one ledger day.
type LedgerEditRequest struct {
	Field    string `json:"field" binding:"required,oneof=quantity_in quantity_out notes"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// QuickAdjustRequest adds an inbound or outbound amount to one day.
type QuickAdjustRequest struct {
	Direction string `json:"direction" binding:"required,oneof=in out"`
	Amount    int    `json:"amount" binding:"required,gt=0"`
}

// MovementRequest records a raw movement entry.
type MovementRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	QuantityIn  int    `json:"quantityIn" binding:"gte=0"`
	QuantityOut int    `json:"quantityOut" binding:"gte=0"`
	Notes       string `json:"notes"`
}

// WeekQuery selects the week containing the anchor day.
type WeekQuery struct {
	Anchor string `form:"anchor"`
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	CategoriesCreated int      `json:"categoriesCreated"`
	ProductsCreated   int      `json:"productsCreated"`
	RowsSkipped       int      `json:"rowsSkipped"`
	Errors            []string `json:"errors,omitempty"`
}
