package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/product"
	"github.com/DhimiMohamed/stock-management/internal/domain/ledger"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres"
)

const productTable = "products"

var productColumns = []string{
	"id", "category_id", "name", "description", "unit", "unit_price",
	"min_stock", "actual_stock", "created_at", "updated_at",
}

// ProductRepo implements product.Repository and the ledger's
// ProductStore for baseline reads and propagation.
type ProductRepo struct {
	txm *postgres.TxManager
}

var (
	_ product.Repository  = (*ProductRepo)(nil)
	_ ledger.ProductStore = (*ProductRepo)(nil)
)

func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{txm: txm}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := builder().
		Insert(productTable).
		Columns(productColumns...).
		Values(p.ID, p.CategoryID, p.Name, p.Description, p.Unit, p.UnitPrice,
			p.MinStock, p.ActualStock, p.CreatedAt, p.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewValidation("category does not exist")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := builder().
		Select(productColumns...).
		From(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context, filter product.Filter) ([]product.Product, error) {
	q := builder().
		Select(productColumns...).
		From(productTable).
		OrderBy("name")

	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.LowOnly {
		q = q.Where("actual_stock <= min_stock")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []product.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	q := builder().
		Update(productTable).
		Set("category_id", p.CategoryID).
		Set("name", p.Name).
		Set("description", p.Description).
		Set("unit", p.Unit).
		Set("unit_price", p.UnitPrice).
		Set("min_stock", p.MinStock).
		Set("actual_stock", p.ActualStock).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("product", "name", p.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	q := builder().
		Delete(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

// BaselineStock reads the product's last known running stock.
func (r *ProductRepo) BaselineStock(ctx context.Context, productID id.ID) (int, error) {
	q := builder().
		Select("actual_stock").
		From(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var stock int
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &stock, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return 0, apperror.NewNotFound("product", productID)
		}
		return 0, fmt.Errorf("get baseline stock: %w", err)
	}
	return stock, nil
}

// SetBaselineStock propagates a new running stock to the product.
func (r *ProductRepo) SetBaselineStock(ctx context.Context, productID id.ID, stock int) error {
	q := builder().
		Update(productTable).
		Set("actual_stock", stock).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set baseline stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}
