// Package category holds the product category catalog.
package category

import (
	"strings"
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// Category groups products for filtering and reporting.
type Category struct {
	ID          id.ID     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks required fields before persistence.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("category name is required")
	}
	if len(c.Name) > 120 {
		return apperror.NewValidation("category name must be at most 120 characters")
	}
	return nil
}
