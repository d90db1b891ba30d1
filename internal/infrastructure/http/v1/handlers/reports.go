package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/reports"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves dashboard and report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Dashboard returns the landing-page summary.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// Financial returns the stock valuation and revenue projection,
// optionally with movement totals over a date range.
func (h *ReportsHandler) Financial(c *gin.Context) {
	var query dto.FinancialQuery
	if !h.BindQuery(c, &query) {
		return
	}
	summary, err := h.service.Financial(c.Request.Context(), query.From, query.To)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// Movements returns the date-ranged movement report, as JSON or CSV.
func (h *ReportsHandler) Movements(c *gin.Context) {
	var query dto.MovementReportQuery
	if !h.BindQuery(c, &query) {
		return
	}

	var productID *id.ID
	if query.ProductID != "" {
		parsed, err := id.Parse(query.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id"))
			return
		}
		productID = &parsed
	}

	report, err := h.service.Movements(c.Request.Context(), query.From, query.To, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if query.Format == "csv" {
		filename := fmt.Sprintf("movements_%s_%s.csv", report.From, report.To)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "text/csv")
		c.Status(http.StatusOK)
		if err := reports.WriteMovementCSV(c.Writer, report); err != nil {
			h.Error(c, apperror.NewInternal(err))
		}
		return
	}
	h.OK(c, report)
}

// Valuation lists every product's priced stock.
func (h *ReportsHandler) Valuation(c *gin.Context) {
	rows, err := h.service.Valuation(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(rows))
}
