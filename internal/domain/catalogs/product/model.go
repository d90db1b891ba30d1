// Package product holds the product catalog and its stock baseline.
package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// Product is a stocked item. ActualStock is the baseline balance: the
// last known running stock, kept in sync by ledger propagation.
type Product struct {
	ID          id.ID           `json:"id" db:"id"`
	CategoryID  *id.ID          `json:"categoryId" db:"category_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Unit        string          `json:"unit" db:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	MinStock    int             `json:"minStock" db:"min_stock"`
	ActualStock int             `json:"actualStock" db:"actual_stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsLowStock reports whether the baseline has reached the alert level.
func (p *Product) IsLowStock() bool {
	return p.ActualStock <= p.MinStock
}

// IsOutOfStock reports whether the baseline is fully depleted.
func (p *Product) IsOutOfStock() bool {
	return p.ActualStock <= 0
}

// StockValue is the baseline quantity priced at the unit price.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.ActualStock)))
}

// Validate checks field-level invariants before persistence.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required")
	}
	if len(p.Name) > 200 {
		return apperror.NewValidation("product name must be at most 200 characters")
	}
	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative")
	}
	if p.MinStock < 0 {
		return apperror.NewValidation("minimum stock must not be negative")
	}
	if p.ActualStock < 0 {
		return apperror.NewValidation("actual stock must not be negative")
	}
	return nil
}

// Filter narrows product listings.
type Filter struct {
	CategoryID *id.ID
	Search     string
	LowOnly    bool
}
