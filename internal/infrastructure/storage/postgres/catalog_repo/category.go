package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
	"github.com/DhimiMohamed/stock-management/internal/domain/catalogs/category"
	"github.com/DhimiMohamed/stock-management/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

var categoryColumns = []string{"id", "name", "description", "color", "created_at", "updated_at"}

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	txm *postgres.TxManager
}

var _ category.Repository = (*CategoryRepo)(nil)

func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{txm: txm}
}

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	q := builder().
		Insert(categoryTable).
		Columns(categoryColumns...).
		Values(c.ID, c.Name, c.Description, c.Color, c.CreatedAt, c.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, categoryID id.ID) (*category.Category, error) {
	q := builder().
		Select(categoryColumns...).
		From(categoryTable).
		Where(squirrel.Eq{"id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c category.Category
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("category", categoryID)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	q := builder().
		Select(categoryColumns...).
		From(categoryTable).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []category.Category
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *category.Category) error {
	q := builder().
		Update(categoryTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("color", c.Color).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("category", "name", c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("category", c.ID)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, categoryID id.ID) error {
	q := builder().
		Delete(categoryTable).
		Where(squirrel.Eq{"id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return apperror.NewConflict("category still has products")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("category", categoryID)
	}
	return nil
}
