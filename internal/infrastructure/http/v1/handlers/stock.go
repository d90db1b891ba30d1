package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the cross-product movement endpoints.
type StockHandler struct {
	*BaseHandler
	service *ledger.Service
}

func NewStockHandler(base *BaseHandler, service *ledger.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// Movements lists the newest entries, optionally for one product.
// GET /stock/movements?limit=50&productId=…
func (h *StockHandler) Movements(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	var productID *id.ID
	if raw := c.Query("productId"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id"))
			return
		}
		productID = &parsed
	}
	entries, err := h.service.RecentMovements(c.Request.Context(), productID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(entries))
}

// CreateEntry records a movement for a product and day.
// POST /stock/entries
func (h *StockHandler) CreateEntry(c *gin.Context) {
	var req dto.MovementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id"))
		return
	}
	led, err := h.service.RecordMovement(c.Request.Context(), productID, req.Date,
		req.QuantityIn, req.QuantityOut, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, led)
}

// DeleteEntry removes a movement entry.
// DELETE /stock/entries/:id
func (h *StockHandler) DeleteEntry(c *gin.Context) {
	entryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteEntry(c.Request.Context(), entryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
