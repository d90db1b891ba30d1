package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/category"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/product"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/http/v1/dto"
)

const maxImportErrors = 20

// ImportHandler loads products from an uploaded XLSX workbook.
// Expected columns: category, product name, unit, unit price,
// minimum stock, initial stock. The first row may be a header.
type ImportHandler struct {
	*BaseHandler
	categories *category.Service
	products   *product.Service
}

func NewImportHandler(base *BaseHandler, categories *category.Service, products *product.Service) *ImportHandler {
	return &ImportHandler{BaseHandler: base, categories: categories, products: products}
}

// Import processes the uploaded workbook.
// POST /import/products  (multipart field "file")
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file upload is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		h.Error(c, apperror.NewValidation("file is not a readable XLSX workbook"))
		return
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		h.Error(c, apperror.NewValidation("workbook has no sheets"))
		return
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		h.Error(c, apperror.NewValidation("sheet could not be read"))
		return
	}
	if len(rows) == 0 {
		h.Error(c, apperror.NewValidation("workbook is empty"))
		return
	}

	result, err := h.importRows(c, rows)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ImportHandler) importRows(c *gin.Context, rows [][]string) (*dto.ImportResult, error) {
	ctx := c.Request.Context()
	result := &dto.ImportResult{}

	categoryIDs, err := h.loadCategoryIndex(c)
	if err != nil {
		return nil, err
	}

	start := 0
	if isHeaderRow(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, 1)
		if name == "" {
			result.RowsSkipped++
			continue
		}

		var categoryID *id.ID
		if catName := cell(row, 0); catName != "" {
			cid, ok := categoryIDs[strings.ToLower(catName)]
			if !ok {
				created, err := h.categories.Create(ctx, catName, "", "")
				if err != nil {
					result.RowsSkipped++
					addImportError(result, i+1, err)
					continue
				}
				cid = created.ID
				categoryIDs[strings.ToLower(catName)] = cid
				result.CategoriesCreated++
			}
			categoryID = &cid
		}

		price, err := parsePrice(cell(row, 3))
		if err != nil {
			result.RowsSkipped++
			addImportError(result, i+1, err)
			continue
		}

		_, err = h.products.Create(ctx, product.CreateInput{
			CategoryID:   categoryID,
			Name:         name,
			Unit:         cell(row, 2),
			UnitPrice:    price,
			MinStock:     parseIntCell(cell(row, 4)),
			InitialStock: parseIntCell(cell(row, 5)),
		})
		if err != nil {
			result.RowsSkipped++
			addImportError(result, i+1, err)
			continue
		}
		result.ProductsCreated++
	}
	return result, nil
}

func (h *ImportHandler) loadCategoryIndex(c *gin.Context) (map[string]id.ID, error) {
	existing, err := h.categories.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	index := make(map[string]id.ID, len(existing))
	for _, cat := range existing {
		index[strings.ToLower(cat.Name)] = cat.ID
	}
	return index, nil
}

func isHeaderRow(row []string) bool {
	first := strings.ToLower(cell(row, 0) + " " + cell(row, 1))
	return strings.Contains(first, "categ") || strings.Contains(first, "product") || strings.Contains(first, "name")
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperror.NewValidation(fmt.Sprintf("unreadable price %q", raw))
	}
	return price, nil
}

func parseIntCell(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func addImportError(result *dto.ImportResult, rowNum int, err error) {
	if len(result.Errors) >= maxImportErrors {
		return
	}
	result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
}
