package dto

import "github.com/shopspring/decimal"

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CreateProductRequest creates a product, optionally with opening stock.
type CreateProductRequest struct {
	CategoryID   *string         `json:"categoryId"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	MinStock     int             `json:"minStock"`
	InitialStock int             `json:"initialStock"`
}

// UpdateProductRequest edits catalog fields. The stock baseline moves
// only through the ledger.
type UpdateProductRequest struct {
	CategoryID  *string         `json:"categoryId"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	MinStock    int             `json:"minStock"`
}

// ProductListQuery filters product listings.
type ProductListQuery struct {
	CategoryID string `form:"categoryId"`
	Search     string `form:"search"`
	LowOnly    bool   `form:"lowStock"`
}
