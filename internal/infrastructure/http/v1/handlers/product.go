package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/product"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product CRUD and low-stock endpoints.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

func parseCategoryID(raw *string) (*id.ID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := id.Parse(*raw)
	if err != nil {
		return nil, apperror.NewValidation("invalid category id")
	}
	return &parsed, nil
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	categoryID, err := parseCategoryID(req.CategoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), product.CreateInput{
		CategoryID:   categoryID,
		Name:         req.Name,
		Description:  req.Description,
		Unit:         req.Unit,
		UnitPrice:    req.UnitPrice,
		MinStock:     req.MinStock,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID.String())
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	found, err := h.service.Get(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, found)
}

func (h *ProductHandler) List(c *gin.Context) {
	var query dto.ProductListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	filter := product.Filter{Search: query.Search, LowOnly: query.LowOnly}
	if query.CategoryID != "" {
		categoryID, err := id.Parse(query.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid category id"))
			return
		}
		filter.CategoryID = &categoryID
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

// LowStock lists products at or below their alert level.
func (h *ProductHandler) LowStock(c *gin.Context) {
	items, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(items))
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	categoryID, err := parseCategoryID(req.CategoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	updated, err := h.service.Update(c.Request.Context(), productID, product.UpdateInput{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		MinStock:    req.MinStock,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
