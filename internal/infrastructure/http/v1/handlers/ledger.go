package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves the weekly ledger view and its mutations.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// Week returns the seven-day view containing the anchor day.
// GET /products/:id/ledger?anchor=2024-06-05
func (h *LedgerHandler) Week(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var query dto.WeekQuery
	if !h.BindQuery(c, &query) {
		return
	}
	led, err := h.service.Week(c.Request.Context(), productID, query.Anchor)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, led)
}

// EditCell sets one field of one day.
// PUT /products/:id/ledger/:date
func (h *LedgerHandler) EditCell(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.LedgerEditRequest
	if !h.BindJSON(c, &req) {
		return
	}
	led, err := h.service.EditCell(c.Request.Context(), productID, c.Param("date"),
		ledger.Field(req.Field), req.Quantity, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, led)
}

// QuickAdjust adds an inbound or outbound amount to one day.
// POST /products/:id/ledger/:date/adjust
func (h *LedgerHandler) QuickAdjust(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.QuickAdjustRequest
	if !h.BindJSON(c, &req) {
		return
	}
	led, err := h.service.QuickAdjust(c.Request.Context(), productID, c.Param("date"),
		ledger.Direction(req.Direction), req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, led)
}
