package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kalkyle/platform/apperr"
)

const (
	categoryNotFoundMessage = "Kategori ikke funnet"
	itemNotFoundMessage     = "Kostnadselement ikke funnet"
)

const itemColumns = `i.id, i.category_id, c.name, c.type, i.name, i.description,
		i.unit, i.unit_price, i.ndt_method, i.ndt_level, i.created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListCategories retrieves all cost categories ordered by sort order, then name.
func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, type, sort_order
		FROM cost_categories
		ORDER BY sort_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Type, &cat.SortOrder); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// GetCategory retrieves a single cost category.
func (r *Repo) GetCategory(ctx context.Context, id uuid.UUID) (Category, error) {
	query := `
		SELECT id, name, type, sort_order
		FROM cost_categories
		WHERE id = $1`

	var cat Category
	err := r.pool.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Type, &cat.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

// CategoryExists reports whether a category with the given ID exists.
func (r *Repo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cost_categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}
	return exists, nil
}

// ListItems retrieves catalog items joined with their category, optionally
// filtered to one category.
func (r *Repo) ListItems(ctx context.Context, categoryID *uuid.UUID) ([]Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM cost_items i
		JOIN cost_categories c ON c.id = i.category_id
		WHERE ($1::uuid IS NULL OR i.category_id = $1)
		ORDER BY c.sort_order, i.name`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// GetItem retrieves a single catalog item with its category.
func (r *Repo) GetItem(ctx context.Context, id uuid.UUID) (Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM cost_items i
		JOIN cost_categories c ON c.id = i.category_id
		WHERE i.id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// CreateItem inserts a new catalog item and returns it with category fields.
func (r *Repo) CreateItem(ctx context.Context, params CreateItemParams) (Item, error) {
	query := `
		INSERT INTO cost_items (id, category_id, name, description, unit, unit_price, ndt_method, ndt_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		uuid.New(), params.CategoryID, params.Name, params.Description,
		params.Unit, params.UnitPrice, params.NdtMethod, params.NdtLevel,
	).Scan(&id)
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}

	return r.GetItem(ctx, id)
}

// UpdateItem applies a partial update and returns the stored item.
func (r *Repo) UpdateItem(ctx context.Context, id uuid.UUID, params UpdateItemParams) (Item, error) {
	query := `
		UPDATE cost_items SET
			category_id = COALESCE($2, category_id),
			name        = COALESCE($3, name),
			description = COALESCE($4, description),
			unit        = COALESCE($5, unit),
			unit_price  = COALESCE($6, unit_price),
			ndt_method  = COALESCE($7, ndt_method),
			ndt_level   = COALESCE($8, ndt_level)
		WHERE id = $1
		RETURNING id`

	var returned uuid.UUID
	err := r.pool.QueryRow(ctx, query, id,
		params.CategoryID, params.Name, params.Description,
		params.Unit, params.UnitPrice, params.NdtMethod, params.NdtLevel,
	).Scan(&returned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, apperr.NotFound(itemNotFoundMessage)
		}
		return Item{}, fmt.Errorf("update item: %w", err)
	}

	return r.GetItem(ctx, returned)
}

// DeleteItem removes a catalog item. Quote lines referencing it keep their
// copied values; the reference is nulled by the schema.
func (r *Repo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cost_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(itemNotFoundMessage)
	}
	return nil
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	var createdAt time.Time

	err := row.Scan(
		&item.ID, &item.CategoryID, &item.CategoryName, &item.CategoryType,
		&item.Name, &item.Description, &item.Unit, &item.UnitPrice,
		&item.NdtMethod, &item.NdtLevel, &createdAt,
	)
	if err != nil {
		return Item{}, err
	}

	item.CreatedAt = createdAt.Format(time.RFC3339)
	return item, nil
}
